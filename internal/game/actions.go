package game

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeondelve/internal/combat"
	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/save"
	"github.com/samdwyer/dungeondelve/internal/world"
)

// handleMove attempts a one-step move. The target tile's OnEnter fires
// whether or not the move succeeds, and enemies take their turn only after
// a successful move.
func (c *Controller) handleMove(ctx context.Context, dx, dy int) {
	newX, newY := c.player.X+dx, c.player.Y+dy
	if !c.grid.InBounds(newX, newY) {
		c.log.Append("You can't move outside the map.")
		return
	}

	next := c.grid.At(newX, newY)
	if next.Walkable() {
		c.player.X, c.player.Y = newX, newY
		next.OnEnter(c.player, c.grid, c.log)
		if world.MoveEnemies(c.grid, c.player, c.rng, c.log) {
			c.gameOver()
			return
		}
	} else {
		next.OnEnter(c.player, c.grid, c.log)
	}

	if c.player.AtExit {
		c.handleExitReached(ctx)
	}
}

// handleTake runs the interaction on the player's tile. Treasure chests
// get the indexed take loop; everything else defers to the tile.
func (c *Controller) handleTake(tile world.Tile) {
	if chest, ok := tile.(*world.TreasureChestTile); ok {
		c.chestLoop(chest)
		return
	}
	tile.OnInteract(c.player, c.log)
}

// chestLoop lets the player take chest rewards one at a time until the
// chest is empty, the player backs out, or a pickup is rejected.
func (c *Controller) chestLoop(chest *world.TreasureChestTile) {
	if len(chest.Rewards()) == 0 {
		c.log.Append("The chest is empty.")
		return
	}

	c.log.Append("You see the following item(s).")
	for len(chest.Rewards()) > 0 {
		c.log.Append(itemChoices("Pick an item", chest.Rewards()))

		choice, ok := c.readChoice(len(chest.Rewards()))
		if !ok {
			c.log.Append("You decide not to take anything.")
			return
		}

		index := choice - 1
		item := chest.Rewards()[index]
		if !item.OnPickup(c.player, c.log) {
			break
		}
		c.log.Append("You take the %s.", item.Name())
		chest.RemoveReward(index)
	}

	if len(chest.Rewards()) == 0 {
		c.log.Append("The chest is now empty.")
	}
}

// handleUse lets the player pick and use an inventory item. Using anything
// mid-encounter provokes the blocking enemy.
func (c *Controller) handleUse(tile world.Tile) {
	used := false
	if len(c.player.Inventory) == 0 {
		c.log.Append("Your inventory is empty, there is nothing to use.")
	} else {
		c.log.Append(itemChoices("Choose an item", c.player.Inventory))

		choice, ok := c.readChoice(len(c.player.Inventory))
		if !ok {
			c.log.Append("You decide not to use anything.")
			return
		}

		item := c.player.RemoveItem(choice - 1)
		item.OnUse(c.player, c.rng, c.log)
		used = true
	}

	if enemy := tile.Enemy(); enemy != nil && used {
		if enemy.Attack(c.player, c.rng, c.log) {
			c.gameOver()
			return
		}
		c.log.Append("Press [F] to fight, [R] to run away, or [U] to use an item.")
	}
}

// handleFight resolves one fight exchange on the player's tile.
func (c *Controller) handleFight(tile world.Tile) {
	if c.fled {
		c.log.Append("You have already run away.")
		return
	}

	outcome := c.resolver.Fight(c.grid, c.player, tile, c.log)
	if outcome.PlayerDefeated {
		c.gameOver()
		return
	}
	for _, decision := range outcome.Pending {
		c.resolveDropDecision(decision)
	}
	if tile.Enemy() != nil {
		c.log.Append("Press [F] to fight, [R] to run away, or [U] to use an item.")
	}
}

// handleFlee attempts to run away from the enemy on the player's tile.
func (c *Controller) handleFlee(tile world.Tile) {
	if c.fled {
		c.log.Append("You have already run away.")
		return
	}

	outcome := c.resolver.Flee(c.player, tile, c.log)
	if outcome.PlayerDefeated {
		c.gameOver()
		return
	}
	if outcome.Fled {
		c.fled = true
		return
	}
	if tile.Enemy() != nil {
		c.log.Append("Press [F] to fight, [R] to run away, or [U] to use an item.")
	}
}

// resolveDropDecision prompts for a pending drop: keep it by throwing an
// inventory item away, or let it go.
func (c *Controller) resolveDropDecision(decision combat.DropDecision) {
	if !c.confirm("Would you like to remove an item from your inventory? (y/n)") {
		c.log.Append("You decide not to remove anything.")
		return
	}

	c.log.Append(itemChoices("Choose an item", c.player.Inventory))
	choice, ok := c.readChoice(len(c.player.Inventory))
	if !ok {
		c.resolver.ResolveDrop(c.player, decision, -1, c.log)
		return
	}
	c.resolver.ResolveDrop(c.player, decision, choice-1, c.log)
}

// handleSave snapshots the session to the save file, asking before
// overwriting an existing one.
func (c *Controller) handleSave(ctx context.Context) {
	_, span := c.tracer.Start(ctx, "save.write",
		trace.WithAttributes(attribute.Int("game.level", c.levelIndex)))
	defer span.End()

	if c.store.Exists() {
		if !c.confirm("Save file already exists. Overwrite? (y/n)") {
			c.log.Append("Save cancelled.")
			return
		}
	}

	doc := save.Snapshot(c.grid, c.player, c.levelIndex, c.playTime())
	if err := c.store.Write(doc); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		c.log.Append("Error saving game.")
		return
	}
	c.log.Append("Game saved.")
}

// handleLoad replaces the whole session state from the save file. Any
// failure leaves the running game untouched.
func (c *Controller) handleLoad(ctx context.Context) {
	if !c.confirm("Are you sure you want to load from a save file? (y/n)") {
		c.log.Append("Load cancelled.")
		return
	}

	_, span := c.tracer.Start(ctx, "save.read")
	defer span.End()

	doc, err := c.store.Read()
	if err != nil {
		if !errors.Is(err, save.ErrNoSave) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "load failed")
		}
		c.log.Append("No valid save file found or file is corrupted.")
		return
	}

	decoder := save.NewDecoder(c.enemies, c.rng)
	grid, player, err := decoder.Restore(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "restore failed")
		c.log.Append("No valid save file found or file is corrupted.")
		return
	}

	c.grid = grid
	c.player = player
	c.levelIndex = doc.LevelIndex
	c.accumulated = doc.PlayTime
	c.sessionStart = time.Now()
	c.fled = false
	c.log.Append("Game loaded successfully.")
}

// handleExitReached advances to the next level, or ends the run in victory
// after the final one.
func (c *Controller) handleExitReached(ctx context.Context) {
	if c.levelIndex < c.levels.Count() {
		next := c.levelIndex + 1
		if err := c.enterLevel(next); err != nil {
			// Level data is validated at startup; reaching this means the
			// embedded data changed underneath us.
			c.log.Append("The way forward has collapsed.")
			c.running = false
			return
		}
		c.log.Append("You step through the exit.")
		c.log.Append("Welcome to Level %d!", next)
		c.player.X, c.player.Y = c.startX, c.startY
		c.player.AtExit = false
		c.fled = false
		c.player.MaxHP += 5
		c.player.HP = c.player.MaxHP
		return
	}
	c.victory(ctx)
}

// victory ends the run: final score and time, best-record merge, and the
// optional highscore display.
func (c *Controller) victory(ctx context.Context) {
	total := c.playTime()

	_, span := c.tracer.Start(ctx, "game.victory",
		trace.WithAttributes(
			attribute.Int("game.gold", c.player.Gold),
			attribute.Float64("game.play_time_seconds", total),
		))
	defer span.End()

	c.log.Append("You step through the final exit.")
	c.log.Append("------Congratulations, you win!------")
	c.log.Append("Your score (gold): %d", c.player.Gold)
	c.log.Append("Total time: %s", formatDuration(&total))

	record := c.best.Read()
	merged, changed := record.Merge(c.player.Gold, total)
	if changed {
		if err := c.best.Write(merged); err == nil {
			c.log.Append("New highscore achieved!")
		}
	}

	c.io.Render(c.view())
	c.showHighscore(merged)
	c.running = false
}

// gameOver ends the run after the player's HP is depleted.
func (c *Controller) gameOver() {
	total := c.playTime()
	c.log.Append("Your health has been depleted.")
	c.log.Append("------GAME OVER!------")
	c.log.Append("Your score (gold): %d", c.player.Gold)
	c.log.Append("Total time: %s", formatDuration(&total))

	c.showHighscore(c.best.Read())
	c.running = false
}

// showHighscore offers to display the best record.
func (c *Controller) showHighscore(record save.BestRecord) {
	if !c.confirm("Show highscore? (y/n)") {
		return
	}
	c.log.Append("------Highscore------")
	c.log.Append("Best score: %d", record.BestScore)
	c.log.Append("Best time: %s", formatDuration(record.BestTime))
	c.io.Render(c.view())
}

// confirm asks a y/n question, reprompting until the answer is valid. An
// IO error counts as "n".
func (c *Controller) confirm(question string) bool {
	c.log.Append(question)
	for {
		c.io.Render(c.view())
		line, err := c.io.ReadLine()
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true
		case "n":
			return false
		default:
			c.log.Append("Please enter a valid input.")
		}
	}
}

// readChoice reads a whole number in [0, max], reprompting on anything
// else. It returns (choice, true) for 1..max and (0, false) for 0 (back)
// or an IO error.
func (c *Controller) readChoice(max int) (int, bool) {
	for {
		c.io.Render(c.view())
		line, err := c.io.ReadLine()
		if err != nil {
			return 0, false
		}
		result, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			c.log.Append("Please enter a whole number.")
			continue
		}
		if result < 0 {
			c.log.Append("Please enter a value that is bigger than 0.")
			continue
		}
		if result > max {
			c.log.Append("Please enter a value that is smaller than %d.", max)
			continue
		}
		if result == 0 {
			return 0, false
		}
		return result, true
	}
}

// itemChoices builds a numbered choice line: "<verb>: [0] Back [1] X ...".
func itemChoices(verb string, items []entity.Item) string {
	var b strings.Builder
	b.WriteString(verb)
	b.WriteString(": [0] Back ")
	for i, item := range items {
		b.WriteString("[")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("] ")
		b.WriteString(item.Name())
		b.WriteString(" ")
	}
	return strings.TrimRight(b.String(), " ")
}
