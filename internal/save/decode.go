package save

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/world"
)

// ErrUnknownItem marks an item type tag the decoder does not recognize.
// Unlike tiles and enemies, items have no safe default, so this fails the
// whole load.
var ErrUnknownItem = errors.New("unknown item type")

// Decoder reconstructs world state from a save document. Each entity is
// built as a type-appropriate default first, then explicit document fields
// are overlaid.
type Decoder struct {
	registry *data.EnemyRegistry
	rng      *rand.Rand
}

// NewDecoder creates a decoder. The rng feeds default HP rolls and the
// reward sets of reconstructed treasure chests.
func NewDecoder(registry *data.EnemyRegistry, rng *rand.Rand) *Decoder {
	return &Decoder{registry: registry, rng: rng}
}

// Restore reconstructs the grid and player from a validated document. It
// either returns a complete world or an error; it never mutates anything
// the caller already holds.
func (d *Decoder) Restore(doc *Document) (*world.Grid, *entity.Player, error) {
	player, err := d.decodePlayer(doc.Player)
	if err != nil {
		return nil, nil, err
	}
	grid, err := d.decodeGrid(doc.Grid)
	if err != nil {
		return nil, nil, err
	}
	return grid, player, nil
}

func (d *Decoder) decodeItem(doc *ItemDoc) (entity.Item, error) {
	if doc == nil {
		return nil, nil
	}
	item, err := entity.NewItemFromTag(doc.Type)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownItem, doc.Type)
	}
	switch it := item.(type) {
	case *entity.Gold:
		if doc.Amount != 0 {
			it.Amount = doc.Amount
		}
	case *entity.Weapon:
		name := it.Name()
		if doc.Name != "" {
			name = doc.Name
		}
		low, high := it.AttackLow, it.AttackHigh
		if doc.AttackLow > 0 {
			low = doc.AttackLow
		}
		if doc.AttackHigh > 0 {
			high = doc.AttackHigh
		}
		return entity.NewWeapon(name, low, high), nil
	}
	return item, nil
}

func (d *Decoder) decodeEnemy(doc *EnemyDoc) (*entity.Enemy, error) {
	if doc == nil {
		return nil, nil
	}
	// Unknown enemy kinds fall back to the baseline definition rather
	// than failing the load.
	def := d.registry.GetByKind(doc.Type)
	if def == nil {
		def = d.registry.Default()
	}
	if def == nil {
		return nil, errors.New("enemy registry is empty")
	}

	enemy := entity.NewEnemyFromDef(def, doc.X, doc.Y, d.rng)
	enemy.Kind = doc.Type
	if doc.Name != "" {
		enemy.Name = doc.Name
	}
	if doc.Symbol != "" {
		enemy.Symbol = rune(doc.Symbol[0])
	}
	if doc.HP != 0 {
		enemy.HP = doc.HP
	}
	if doc.AttackLow != 0 {
		enemy.AttackLow = doc.AttackLow
	}
	if doc.AttackHigh != 0 {
		enemy.AttackHigh = doc.AttackHigh
	}
	if doc.CanMove != nil {
		enemy.CanMove = *doc.CanMove
	}
	if doc.EngageChance != nil {
		enemy.EngageChance = *doc.EngageChance
	}

	drops := make([]entity.Item, 0, len(doc.ItemDrop))
	for i := range doc.ItemDrop {
		item, err := d.decodeItem(&doc.ItemDrop[i])
		if err != nil {
			return nil, err
		}
		drops = append(drops, item)
	}
	enemy.Drops = drops
	return enemy, nil
}

func (d *Decoder) decodeTile(doc *TileDoc) (world.Tile, error) {
	var tile world.Tile
	switch doc.Type {
	case "Wall":
		tile = world.NewWall()
	case "TreasureChest":
		// Chest contents are not serialized; a reloaded chest rolls a
		// fresh reward set.
		tile = world.NewTreasureChest(d.rng)
	case "Exit":
		exit := world.NewExit()
		exit.SetWalkable(doc.Walkable)
		tile = exit
	case "Floor":
		tile = world.NewFloor()
	default:
		// Unknown tile types fall back to a plain floor.
		tile = world.NewFloor()
	}

	item, err := d.decodeItem(doc.Item)
	if err != nil {
		return nil, err
	}
	tile.SetItem(item)

	enemy, err := d.decodeEnemy(doc.Enemy)
	if err != nil {
		return nil, err
	}
	tile.SetEnemy(enemy)
	return tile, nil
}

func (d *Decoder) decodeGrid(doc *GridDoc) (*world.Grid, error) {
	tiles := make([][]world.Tile, len(doc.Tiles))
	for y := range doc.Tiles {
		tiles[y] = make([]world.Tile, len(doc.Tiles[y]))
		for x := range doc.Tiles[y] {
			tile, err := d.decodeTile(&doc.Tiles[y][x])
			if err != nil {
				return nil, err
			}
			tiles[y][x] = tile
		}
	}
	return world.NewGrid(tiles)
}

func (d *Decoder) decodePlayer(doc *PlayerDoc) (*entity.Player, error) {
	player := entity.NewPlayer(doc.X, doc.Y)
	if doc.MaxHP > 0 {
		player.MaxHP = doc.MaxHP
	}
	player.HP = doc.HP
	player.Gold = doc.Gold
	player.AtExit = doc.AtExit

	if doc.Weapon != nil {
		item, err := d.decodeItem(doc.Weapon)
		if err != nil {
			return nil, err
		}
		if weapon, ok := item.(*entity.Weapon); ok {
			player.Weapon = weapon
		}
	}

	inventory := make([]entity.Item, 0, len(doc.Inventory))
	for i := range doc.Inventory {
		item, err := d.decodeItem(&doc.Inventory[i])
		if err != nil {
			return nil, err
		}
		inventory = append(inventory, item)
	}
	player.Inventory = inventory
	return player, nil
}
