package game

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/entity"
)

// scriptIO feeds a fixed sequence of input lines and records every view.
type scriptIO struct {
	lines []string
	views []View
}

func (s *scriptIO) Render(v View) {
	s.views = append(s.views, v)
}

func (s *scriptIO) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", errors.New("script exhausted")
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func testRegistry() *data.EnemyRegistry {
	return data.NewEnemyRegistry([]data.EnemyDef{{
		Kind:         "enemy",
		Name:         "monster",
		Glyph:        "E",
		Tier:         1,
		HPMin:        5,
		HPMax:        5,
		AttackLow:    1,
		AttackHigh:   1,
		EngageChance: 0,
		SpawnWeight:  1,
	}})
}

// testController builds a controller over a small fixed level. The enemy
// never engages on its own, so turns stay deterministic.
func testController(t *testing.T, levelMap []string, lines ...string) (*Controller, *scriptIO) {
	t.Helper()
	io := &scriptIO{lines: lines}
	dir := t.TempDir()

	c, err := New(Config{
		IO:  io,
		RNG: rand.New(rand.NewSource(1)),
		Levels: data.NewSource([]data.LevelDef{
			{Name: "Level 1", Tier: 1, Map: levelMap},
		}),
		Enemies:  testRegistry(),
		SavePath: filepath.Join(dir, "game.json"),
		BestPath: filepath.Join(dir, "highscores.json"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, io
}

func hasMessage(c *Controller, want string) bool {
	for _, line := range c.log.Tail(c.log.Len()) {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}

func TestUnknownCommand(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	})

	c.step(context.Background(), "z")
	if c.log.Last() != "Unknown command." {
		t.Errorf("log = %q, want unknown-command message", c.log.Last())
	}
}

func TestMoveOutsideMap(t *testing.T) {
	c, _ := testController(t, []string{
		"@.",
		"..",
	})

	c.step(context.Background(), "w")
	if c.log.Last() != "You can't move outside the map." {
		t.Errorf("log = %q, want out-of-bounds message", c.log.Last())
	}
	if c.player.X != 0 || c.player.Y != 0 {
		t.Errorf("player at (%d, %d), want unchanged (0, 0)", c.player.X, c.player.Y)
	}
}

func TestMoveIntoWall(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	})

	c.step(context.Background(), "w")
	if c.log.Last() != "You bump into a wall." {
		t.Errorf("log = %q, want wall message", c.log.Last())
	}
	if c.player.X != 1 || c.player.Y != 1 {
		t.Errorf("player at (%d, %d), want unchanged (1, 1)", c.player.X, c.player.Y)
	}
}

func TestMoveOntoGoldAndTake(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@$#",
		"####",
	})
	ctx := context.Background()

	c.step(ctx, "d")
	if c.player.X != 2 || c.player.Y != 1 {
		t.Fatalf("player at (%d, %d), want (2, 1)", c.player.X, c.player.Y)
	}
	if !hasMessage(c, "You find a gold. Press [T] to take.") {
		t.Error("missing find-item message after stepping onto gold")
	}

	c.step(ctx, "t")
	if c.player.Gold != 1 {
		t.Errorf("gold = %d, want 1", c.player.Gold)
	}
	if c.grid.At(2, 1).Item() != nil {
		t.Error("gold still on the tile after taking it")
	}
}

func TestBlockedByEnemy(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	})
	enemy := &entity.Enemy{Name: "monster", Symbol: 'E', X: 1, Y: 1, HP: 5, AttackLow: 1, AttackHigh: 1}
	c.grid.At(1, 1).SetEnemy(enemy)

	c.step(context.Background(), "d")
	if c.player.X != 1 {
		t.Errorf("player moved to x=%d despite the blocking enemy", c.player.X)
	}
	if !hasMessage(c, "You can't move! There is a monster blocking your way.") {
		t.Error("missing blocked-movement message")
	}
}

func TestFledUnblocksMovement(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	})
	enemy := &entity.Enemy{Name: "monster", Symbol: 'E', X: 1, Y: 1, HP: 5, AttackLow: 1, AttackHigh: 1}
	c.grid.At(1, 1).SetEnemy(enemy)
	c.fled = true

	c.step(context.Background(), "d")
	if c.player.X != 2 {
		t.Errorf("player x = %d, want 2 after fleeing", c.player.X)
	}
	if c.fled {
		t.Error("fled flag survived a movement attempt")
	}
}

func TestFightAfterFlee(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	})
	c.grid.At(1, 1).SetEnemy(&entity.Enemy{Name: "monster", HP: 5, AttackLow: 1, AttackHigh: 1})
	c.fled = true

	c.step(context.Background(), "f")
	if c.log.Last() != "You have already run away." {
		t.Errorf("log = %q, want already-fled message", c.log.Last())
	}
}

func TestQuit(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	})
	c.running = true

	c.step(context.Background(), "q")
	if c.running {
		t.Error("running = true after quit")
	}
	if c.log.Last() != "You quit the adventure." {
		t.Errorf("log = %q, want quit message", c.log.Last())
	}
}

func TestUseItemMidEncounter(t *testing.T) {
	// Script answers the item choice prompt with "1".
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	}, "1")
	c.player.HP = 5
	c.player.AddItem(entity.NewPotion())
	c.grid.At(1, 1).SetEnemy(&entity.Enemy{Name: "monster", HP: 50, AttackLow: 1, AttackHigh: 1})

	c.step(context.Background(), "u")
	if len(c.player.Inventory) != 0 {
		t.Error("potion still in inventory after use")
	}
	if c.player.HP <= 5-1 {
		t.Errorf("HP = %d, want healed above 5 minus the counter-attack", c.player.HP)
	}
	if !hasMessage(c, "The monster attacks you!") {
		t.Error("using an item mid-encounter did not provoke the enemy")
	}
	if c.log.Last() != "Press [F] to fight, [R] to run away, or [U] to use an item." {
		t.Errorf("log = %q, want encounter prompt", c.log.Last())
	}
}

func TestUseWithEmptyInventory(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	})

	c.step(context.Background(), "u")
	if c.log.Last() != "Your inventory is empty, there is nothing to use." {
		t.Errorf("log = %q, want empty-inventory message", c.log.Last())
	}
}

func TestChestTakeAndBack(t *testing.T) {
	// Take the first item, then back out of the second.
	c, _ := testController(t, []string{
		"####",
		"#@T#",
		"####",
	}, "1", "0")
	ctx := context.Background()

	c.step(ctx, "d")
	c.step(ctx, "t")

	if len(c.player.Inventory) != 1 {
		t.Fatalf("inventory length = %d, want 1", len(c.player.Inventory))
	}
	if !hasMessage(c, "You decide not to take anything.") {
		t.Error("missing back-out message")
	}
}

func TestSaveThenLoadRestoresState(t *testing.T) {
	// Script: load confirmation "y".
	c, _ := testController(t, []string{
		"####",
		"#@$#",
		"####",
	}, "y")
	ctx := context.Background()

	c.player.Gold = 5
	c.step(ctx, "p")
	if c.log.Last() != "Game saved." {
		t.Fatalf("log = %q, want save confirmation", c.log.Last())
	}

	c.player.Gold = 99
	c.player.HP = 1
	c.step(ctx, "l")
	if c.log.Last() != "Game loaded successfully." {
		t.Fatalf("log = %q, want load confirmation", c.log.Last())
	}
	if c.player.Gold != 5 {
		t.Errorf("gold = %d, want the saved 5", c.player.Gold)
	}
	if c.player.HP != entity.BaseMaxHP {
		t.Errorf("HP = %d, want the saved %d", c.player.HP, entity.BaseMaxHP)
	}
	if c.grid.At(2, 1).Item() == nil {
		t.Error("saved grid lost the gold tile item")
	}
}

func TestLoadCancelled(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	}, "n")

	c.step(context.Background(), "l")
	if c.log.Last() != "Load cancelled." {
		t.Errorf("log = %q, want cancellation message", c.log.Last())
	}
}

func TestLoadWithoutSaveFile(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	}, "y")

	c.step(context.Background(), "l")
	if c.log.Last() != "No valid save file found or file is corrupted." {
		t.Errorf("log = %q, want missing-save message", c.log.Last())
	}
}

func TestOverwritePromptDeclined(t *testing.T) {
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	}, "n")
	ctx := context.Background()

	c.step(ctx, "p")
	if c.log.Last() != "Game saved." {
		t.Fatalf("first save: log = %q, want confirmation", c.log.Last())
	}

	c.step(ctx, "p")
	if c.log.Last() != "Save cancelled." {
		t.Errorf("second save: log = %q, want cancellation", c.log.Last())
	}
}

func TestDefeatEndsRun(t *testing.T) {
	// Script: decline the highscore prompt.
	c, _ := testController(t, []string{
		"####",
		"#@.#",
		"####",
	}, "n")
	c.running = true
	c.player.HP = 1
	c.grid.At(1, 1).SetEnemy(&entity.Enemy{Name: "monster", HP: 50, AttackLow: 1, AttackHigh: 1})

	c.step(context.Background(), "f")
	if c.running {
		t.Error("running = true after defeat")
	}
	if !hasMessage(c, "Your health has been depleted.") || !hasMessage(c, "------GAME OVER!------") {
		t.Error("missing game-over summary")
	}
}

func TestVictoryAdvancesAndRecordsBest(t *testing.T) {
	// One enemy guards a one-level dungeon; kill it, walk to the exit,
	// decline the highscore prompt.
	c, _ := testController(t, []string{
		"#####",
		"#@EX#",
		"#####",
	}, "n")
	c.running = true
	c.player.Weapon = entity.NewAxe()
	ctx := context.Background()

	c.step(ctx, "d") // step onto the enemy's tile
	c.step(ctx, "f") // axe 5-6 against 5 HP: one swing
	if c.grid.EnemiesRemaining() != 0 {
		t.Fatalf("EnemiesRemaining() = %d, want 0", c.grid.EnemiesRemaining())
	}
	if !hasMessage(c, "The exit has unlocked.") {
		t.Fatal("exit did not unlock after the last enemy fell")
	}

	c.step(ctx, "d")
	if c.running {
		t.Error("running = true after the final exit")
	}
	if !hasMessage(c, "------Congratulations, you win!------") {
		t.Error("missing victory banner")
	}
	if !hasMessage(c, "New highscore achieved!") {
		t.Error("first completed run did not set a highscore")
	}

	record := c.best.Read()
	if record.BestTime == nil {
		t.Error("best record has no completion time after a win")
	}
}

func TestRunEndsGracefullyWhenInputCloses(t *testing.T) {
	c, io := testController(t, []string{
		"####",
		"#@.#",
		"####",
	}, "d")

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c.player.X != 2 {
		t.Errorf("player x = %d, want 2 after the scripted move", c.player.X)
	}
	if c.log.Last() != "You quit the adventure." {
		t.Errorf("log = %q, want quit message after input closed", c.log.Last())
	}
	if len(io.views) < 2 {
		t.Errorf("rendered %d frames, want at least 2", len(io.views))
	}
}

func TestLevelAdvanceCarriesProgress(t *testing.T) {
	io := &scriptIO{}
	dir := t.TempDir()
	c, err := New(Config{
		IO:  io,
		RNG: rand.New(rand.NewSource(1)),
		Levels: data.NewSource([]data.LevelDef{
			{Name: "Level 1", Tier: 1, Map: []string{"#####", "#@.X#", "#####"}},
			{Name: "Level 2", Tier: 1, Map: []string{"#####", "#.@.#", "#####"}},
		}),
		Enemies:  testRegistry(),
		SavePath: filepath.Join(dir, "game.json"),
		BestPath: filepath.Join(dir, "highscores.json"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.running = true
	c.player.Gold = 3
	c.player.HP = 4
	ctx := context.Background()

	// Exits only unlock when the last enemy falls; this level has none,
	// so open it directly.
	c.grid.UnlockExits(c.log)

	c.step(ctx, "d")
	c.step(ctx, "d")

	if c.levelIndex != 2 {
		t.Fatalf("levelIndex = %d, want 2", c.levelIndex)
	}
	if !hasMessage(c, "Welcome to Level 2!") {
		t.Error("missing level welcome message")
	}
	if c.player.X != 2 || c.player.Y != 1 {
		t.Errorf("player at (%d, %d), want the new start (2, 1)", c.player.X, c.player.Y)
	}
	if c.player.MaxHP != entity.BaseMaxHP+5 {
		t.Errorf("MaxHP = %d, want %d", c.player.MaxHP, entity.BaseMaxHP+5)
	}
	if c.player.HP != c.player.MaxHP {
		t.Errorf("HP = %d, want full %d", c.player.HP, c.player.MaxHP)
	}
	if c.player.Gold != 3 {
		t.Errorf("gold = %d, want carried-over 3", c.player.Gold)
	}
	if c.player.AtExit {
		t.Error("AtExit = true after the transition")
	}
}
