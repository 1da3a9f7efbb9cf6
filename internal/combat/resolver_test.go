package combat

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
	"github.com/samdwyer/dungeondelve/internal/world"
)

// arena builds a 1x3 strip: floor, floor-with-enemy, exit.
func arena(t *testing.T, enemy *entity.Enemy) (*world.Grid, world.Tile) {
	t.Helper()
	tile := world.NewFloor()
	tile.SetEnemy(enemy)
	grid, err := world.NewGrid([][]world.Tile{{world.NewFloor(), tile, world.NewExit()}})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	return grid, tile
}

func weakEnemy(drops ...entity.Item) *entity.Enemy {
	return &entity.Enemy{
		Name:       "monster",
		Symbol:     'E',
		X:          1,
		HP:         1,
		AttackLow:  1,
		AttackHigh: 1,
		Drops:      drops,
		CanMove:    true,
	}
}

func TestFightDefeatsEnemyAndUnlocksExit(t *testing.T) {
	enemy := weakEnemy()
	grid, tile := arena(t, enemy)
	p := entity.NewPlayer(1, 0)
	log := gamelog.New()
	r := NewResolver(rand.New(rand.NewSource(1)))

	outcome := r.Fight(grid, p, tile, log)
	if !outcome.EnemyDefeated {
		t.Fatal("EnemyDefeated = false against a 1 HP enemy")
	}
	if tile.Enemy() != nil {
		t.Error("enemy still on tile after defeat")
	}
	if !outcome.ExitUnlocked {
		t.Error("ExitUnlocked = false after the last enemy fell")
	}
	if !grid.At(2, 0).Walkable() {
		t.Error("exit still sealed after the last enemy fell")
	}
	if p.HP != entity.BaseMaxHP {
		t.Error("player took damage from a defeated enemy")
	}
}

func TestFightSurvivorCounterAttacks(t *testing.T) {
	enemy := weakEnemy()
	enemy.HP = 100
	grid, tile := arena(t, enemy)
	p := entity.NewPlayer(1, 0)
	log := gamelog.New()
	r := NewResolver(rand.New(rand.NewSource(1)))

	outcome := r.Fight(grid, p, tile, log)
	if outcome.EnemyDefeated || outcome.PlayerDefeated {
		t.Fatalf("outcome = %+v, want an ongoing exchange", outcome)
	}
	if p.HP != entity.BaseMaxHP-1 {
		t.Errorf("player HP = %d, want %d after the counter-attack", p.HP, entity.BaseMaxHP-1)
	}
	if enemy.HP >= 100 {
		t.Error("enemy took no damage")
	}
}

func TestFightFatalCounterAttack(t *testing.T) {
	enemy := weakEnemy()
	enemy.HP = 100
	enemy.AttackLow, enemy.AttackHigh = 5, 10
	grid, tile := arena(t, enemy)
	p := entity.NewPlayer(1, 0)
	p.HP = 3
	log := gamelog.New()
	r := NewResolver(rand.New(rand.NewSource(1)))

	outcome := r.Fight(grid, p, tile, log)
	if !outcome.PlayerDefeated {
		t.Error("PlayerDefeated = false for a 3 HP player against a 5-10 counter-attack")
	}
	if p.HP > 3-5 {
		t.Errorf("player HP = %d, counter-attack must deal at least 5", p.HP)
	}
}

func TestFightNothingThere(t *testing.T) {
	grid, _ := arena(t, nil)
	p := entity.NewPlayer(0, 0)
	log := gamelog.New()
	r := NewResolver(rand.New(rand.NewSource(1)))

	outcome := r.Fight(grid, p, grid.At(0, 0), log)
	if outcome.EnemyDefeated || outcome.PlayerDefeated {
		t.Errorf("outcome = %+v, want zero outcome", outcome)
	}
	if log.Last() != "There is nothing to fight." {
		t.Errorf("log = %q, want nothing-to-fight message", log.Last())
	}
}

func TestFightDropsTransfer(t *testing.T) {
	enemy := weakEnemy(entity.NewPotion())
	grid, tile := arena(t, enemy)
	p := entity.NewPlayer(1, 0)
	log := gamelog.New()
	r := NewResolver(rand.New(rand.NewSource(1)))

	outcome := r.Fight(grid, p, tile, log)
	if len(outcome.Pending) != 0 {
		t.Fatalf("Pending = %d decisions, want 0 with inventory space", len(outcome.Pending))
	}
	if len(p.Inventory) != 1 || p.Inventory[0].Name() != "Potion" {
		t.Errorf("inventory = %v, want the dropped potion", p.Inventory)
	}
}

func TestFightDropsPendingWhenFull(t *testing.T) {
	enemy := weakEnemy(entity.NewPotion())
	grid, tile := arena(t, enemy)
	p := entity.NewPlayer(1, 0)
	for i := 0; i < entity.MaxInventory; i++ {
		p.AddItem(entity.NewDagger())
	}
	log := gamelog.New()
	r := NewResolver(rand.New(rand.NewSource(1)))

	outcome := r.Fight(grid, p, tile, log)
	if len(outcome.Pending) != 1 {
		t.Fatalf("Pending = %d decisions, want 1 at capacity", len(outcome.Pending))
	}
	if outcome.Pending[0].Item.Name() != "Potion" {
		t.Errorf("pending item = %q, want Potion", outcome.Pending[0].Item.Name())
	}
	if len(p.Inventory) != entity.MaxInventory {
		t.Errorf("inventory length = %d, want unchanged %d", len(p.Inventory), entity.MaxInventory)
	}
}

func TestResolveDrop(t *testing.T) {
	p := entity.NewPlayer(0, 0)
	p.AddItem(entity.NewDagger())
	log := gamelog.New()
	r := NewResolver(rand.New(rand.NewSource(1)))
	decision := DropDecision{EnemyName: "monster", Item: entity.NewPotion()}

	r.ResolveDrop(p, decision, -1, log)
	if len(p.Inventory) != 1 || p.Inventory[0].Name() != "Dagger" {
		t.Errorf("inventory after discard = %v, want unchanged", p.Inventory)
	}

	r.ResolveDrop(p, decision, 0, log)
	if len(p.Inventory) != 1 || p.Inventory[0].Name() != "Potion" {
		t.Errorf("inventory after swap = %v, want the potion", p.Inventory)
	}
}

func TestFleeMatchesRoll(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		enemy := weakEnemy()
		enemy.HP = 100
		_, tile := arena(t, enemy)
		p := entity.NewPlayer(1, 0)
		log := gamelog.New()
		r := NewResolver(rand.New(rand.NewSource(seed)))

		wantFled := 1+rand.New(rand.NewSource(seed)).Intn(6) <= 3
		outcome := r.Flee(p, tile, log)
		if outcome.Fled != wantFled {
			t.Errorf("seed %d: Fled = %v, want %v", seed, outcome.Fled, wantFled)
		}
		if !wantFled && p.HP == entity.BaseMaxHP {
			t.Errorf("seed %d: failed flee provoked no counter-attack", seed)
		}
		if wantFled && p.HP != entity.BaseMaxHP {
			t.Errorf("seed %d: successful flee still cost HP", seed)
		}
	}
}

func TestFleeNothingThere(t *testing.T) {
	grid, _ := arena(t, nil)
	p := entity.NewPlayer(0, 0)
	log := gamelog.New()
	r := NewResolver(rand.New(rand.NewSource(1)))

	r.Flee(p, grid.At(0, 0), log)
	if log.Last() != "There is nothing to runaway from." {
		t.Errorf("log = %q, want nothing-to-flee message", log.Last())
	}
}
