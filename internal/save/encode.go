package save

import (
	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/world"
)

// Snapshot captures the full world state into a save document.
func Snapshot(g *world.Grid, p *entity.Player, levelIndex int, playTime float64) *Document {
	return &Document{
		Version:    Version,
		LevelIndex: levelIndex,
		PlayTime:   playTime,
		Player:     encodePlayer(p),
		Grid:       encodeGrid(g),
	}
}

func encodeItem(item entity.Item) *ItemDoc {
	if item == nil {
		return nil
	}
	doc := &ItemDoc{Type: item.TypeTag()}
	switch it := item.(type) {
	case *entity.Gold:
		doc.Amount = it.Amount
	case *entity.Weapon:
		doc.Name = it.Name()
		doc.AttackLow = it.AttackLow
		doc.AttackHigh = it.AttackHigh
	}
	return doc
}

func encodeEnemy(e *entity.Enemy) *EnemyDoc {
	if e == nil {
		return nil
	}
	drops := make([]ItemDoc, 0, len(e.Drops))
	for _, item := range e.Drops {
		drops = append(drops, *encodeItem(item))
	}
	canMove := e.CanMove
	engage := e.EngageChance
	return &EnemyDoc{
		Type:         e.Kind,
		Name:         e.Name,
		Symbol:       string(e.Symbol),
		X:            e.X,
		Y:            e.Y,
		HP:           e.HP,
		AttackLow:    e.AttackLow,
		AttackHigh:   e.AttackHigh,
		CanMove:      &canMove,
		EngageChance: &engage,
		ItemDrop:     drops,
	}
}

func encodeTile(t world.Tile) TileDoc {
	return TileDoc{
		Type:     t.TypeTag(),
		Symbol:   string(t.Symbol()),
		Walkable: t.Walkable(),
		Item:     encodeItem(t.Item()),
		Enemy:    encodeEnemy(t.Enemy()),
	}
}

func encodeGrid(g *world.Grid) *GridDoc {
	tiles := make([][]TileDoc, g.Rows())
	for y := 0; y < g.Rows(); y++ {
		tiles[y] = make([]TileDoc, g.Columns())
		for x := 0; x < g.Columns(); x++ {
			tiles[y][x] = encodeTile(g.At(x, y))
		}
	}
	return &GridDoc{
		Rows:    g.Rows(),
		Columns: g.Columns(),
		Tiles:   tiles,
	}
}

func encodePlayer(p *entity.Player) *PlayerDoc {
	inventory := make([]ItemDoc, 0, len(p.Inventory))
	for _, item := range p.Inventory {
		inventory = append(inventory, *encodeItem(item))
	}
	var weapon *ItemDoc
	if p.Weapon != nil {
		weapon = encodeItem(p.Weapon)
	}
	return &PlayerDoc{
		X:         p.X,
		Y:         p.Y,
		HP:        p.HP,
		Gold:      p.Gold,
		AtExit:    p.AtExit,
		MaxHP:     p.MaxHP,
		Weapon:    weapon,
		Inventory: inventory,
	}
}
