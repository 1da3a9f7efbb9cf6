package world

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
)

func TestBuildLevelTiles(t *testing.T) {
	grid, startX, startY := buildTestLevel(t, []string{
		"######",
		"#@$pE#",
		"#T..X#",
		"######",
	})

	if startX != 1 || startY != 1 {
		t.Fatalf("start = (%d, %d), want (1, 1)", startX, startY)
	}

	tests := []struct {
		x, y int
		tag  string
	}{
		{0, 0, "Wall"},
		{1, 1, "Floor"},
		{2, 1, "Floor"},
		{1, 2, "TreasureChest"},
		{4, 2, "Exit"},
	}
	for _, tt := range tests {
		if got := grid.At(tt.x, tt.y).TypeTag(); got != tt.tag {
			t.Errorf("At(%d, %d).TypeTag() = %q, want %q", tt.x, tt.y, got, tt.tag)
		}
	}

	if gold, ok := grid.At(2, 1).Item().(*entity.Gold); !ok || gold.Amount != 1 {
		t.Errorf("At(2, 1).Item() = %v, want one gold", grid.At(2, 1).Item())
	}
	if _, ok := grid.At(3, 1).Item().(*entity.Potion); !ok {
		t.Errorf("At(3, 1).Item() = %v, want a potion", grid.At(3, 1).Item())
	}

	enemy := grid.At(4, 1).Enemy()
	if enemy == nil {
		t.Fatal("At(4, 1).Enemy() = nil, want a spawned enemy")
	}
	if enemy.HP < 4 || enemy.HP > 10 {
		t.Errorf("spawned enemy HP = %d, want in [4, 10]", enemy.HP)
	}
	if enemy.X != 4 || enemy.Y != 1 {
		t.Errorf("spawned enemy at (%d, %d), want (4, 1)", enemy.X, enemy.Y)
	}
}

func TestBuildLevelMissingTier(t *testing.T) {
	def := &data.LevelDef{Name: "bad", Tier: 5, Map: []string{"#@E#"}}
	if _, _, _, err := BuildLevel(def, testRegistry(), rand.New(rand.NewSource(1))); err == nil {
		t.Error("BuildLevel(tier without definitions) error = nil, want error")
	}
}

func TestBuildLevelFreshChestRewards(t *testing.T) {
	grid, _, _ := buildTestLevel(t, []string{
		"####",
		"#@T#",
		"####",
	})

	chest := grid.At(2, 1).(*TreasureChestTile)
	rewards := chest.Rewards()
	if len(rewards) != 2 {
		t.Fatalf("chest rewards = %d, want 2", len(rewards))
	}
	if _, ok := rewards[0].(*entity.Weapon); !ok {
		t.Errorf("rewards[0] = %v, want a weapon", rewards[0])
	}
	if _, ok := rewards[1].(*entity.Potion); !ok {
		t.Errorf("rewards[1] = %v, want a potion", rewards[1])
	}
}

func TestFloorInteractPicksUpItem(t *testing.T) {
	grid, _, _ := buildTestLevel(t, []string{
		"####",
		"#@$#",
		"####",
	})
	p := entity.NewPlayer(1, 1)
	log := gamelog.New()

	tile := grid.At(2, 1)
	tile.OnInteract(p, log)
	if p.Gold != 1 {
		t.Errorf("gold = %d, want 1", p.Gold)
	}
	if tile.Item() != nil {
		t.Error("item still on tile after pickup")
	}

	tile.OnInteract(p, log)
	if log.Last() != "There's nothing interesting on the floor." {
		t.Errorf("log = %q, want nothing-here message", log.Last())
	}
}
