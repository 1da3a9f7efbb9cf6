package entity

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
)

func carrierDef() *data.EnemyDef {
	return &data.EnemyDef{
		Kind:         "enemy_carrier",
		Name:         "monster",
		Glyph:        "E",
		Tier:         1,
		HPMin:        4,
		HPMax:        10,
		AttackLow:    1,
		AttackHigh:   3,
		EngageChance: 0.2,
		Drops:        []string{"Potion"},
		SpawnWeight:  1,
	}
}

func TestNewEnemyFromDefRollsFreshHP(t *testing.T) {
	def := carrierDef()
	rng := rand.New(rand.NewSource(11))

	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		e := NewEnemyFromDef(def, 1, 2, rng)
		if e.HP < def.HPMin || e.HP > def.HPMax {
			t.Fatalf("HP = %d, want in [%d, %d]", e.HP, def.HPMin, def.HPMax)
		}
		seen[e.HP] = true
	}
	if len(seen) < 2 {
		t.Error("100 spawns rolled identical HP; rolls must be per-instance")
	}
}

func TestNewEnemyFromDefFreshDrops(t *testing.T) {
	def := carrierDef()
	rng := rand.New(rand.NewSource(11))

	a := NewEnemyFromDef(def, 0, 0, rng)
	b := NewEnemyFromDef(def, 1, 0, rng)

	if len(a.Drops) != 1 || len(b.Drops) != 1 {
		t.Fatalf("drop lengths = %d, %d, want 1, 1", len(a.Drops), len(b.Drops))
	}
	if a.Drops[0] == b.Drops[0] {
		t.Error("two spawns share a drop instance; drops must be fresh per spawn")
	}

	a.Drops = a.Drops[:0]
	if len(b.Drops) != 1 {
		t.Error("clearing one spawn's drops affected another")
	}
}

func TestEnemyAttack(t *testing.T) {
	e := &Enemy{Name: "monster", HP: 5, AttackLow: 2, AttackHigh: 2}
	p := NewPlayer(0, 0)
	log := gamelog.New()
	rng := rand.New(rand.NewSource(1))

	if e.Attack(p, rng, log) {
		t.Error("Attack() fatal = true against a healthy player")
	}
	if p.HP != BaseMaxHP-2 {
		t.Errorf("player HP = %d, want %d", p.HP, BaseMaxHP-2)
	}
	if log.Last() != "The monster attacks you! You take 2 damage!" {
		t.Errorf("log = %q, want attack message", log.Last())
	}

	p.HP = 1
	if !e.Attack(p, rng, log) {
		t.Error("Attack() fatal = false against a 1 HP player")
	}
}
