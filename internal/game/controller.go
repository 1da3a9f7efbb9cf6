package game

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/combat"
	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamelog"
	"github.com/samdwyer/dungeondelve/internal/save"
	"github.com/samdwyer/dungeondelve/internal/telemetry"
	"github.com/samdwyer/dungeondelve/internal/world"
)

// Config carries the controller's collaborators. RNG is the single random
// source for the whole session; a fixed seed replays a session exactly.
type Config struct {
	IO       IO
	RNG      *rand.Rand
	Levels   *data.Source
	Enemies  *data.EnemyRegistry
	SavePath string
	BestPath string
	// Tracer may be nil, in which case spans are no-ops.
	Tracer trace.Tracer
}

// Controller owns the session: the grid, the player, the message log, and
// the command dispatch loop.
type Controller struct {
	io       IO
	rng      *rand.Rand
	levels   *data.Source
	enemies  *data.EnemyRegistry
	resolver *combat.Resolver
	store    *save.Store
	best     *save.BestStore
	tracer   trace.Tracer

	sessionID string

	grid           *world.Grid
	player         *entity.Player
	log            *gamelog.Log
	levelIndex     int
	startX, startY int

	// fled suppresses the blocking enemy on the current tile until the
	// player moves again.
	fled    bool
	running bool

	// accumulated is play time carried in from saves; the live session's
	// share is measured from sessionStart.
	accumulated  float64
	sessionStart time.Time
}

// New creates a controller with the first level built and the opening
// messages logged.
func New(cfg Config) (*Controller, error) {
	if cfg.IO == nil {
		return nil, errors.New("game: IO is required")
	}
	if cfg.RNG == nil {
		return nil, errors.New("game: RNG is required")
	}
	if cfg.Levels == nil || cfg.Enemies == nil {
		return nil, errors.New("game: level and enemy data are required")
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}

	c := &Controller{
		io:        cfg.IO,
		rng:       cfg.RNG,
		levels:    cfg.Levels,
		enemies:   cfg.Enemies,
		resolver:  combat.NewResolver(cfg.RNG),
		store:     save.NewStore(cfg.SavePath),
		best:      save.NewBestStore(cfg.BestPath),
		tracer:    tracer,
		sessionID: uuid.NewString(),
		log:       gamelog.New(),
	}

	if err := c.enterLevel(1); err != nil {
		return nil, err
	}
	c.player = entity.NewPlayer(c.startX, c.startY)

	c.log.Append("Welcome to your new adventure!")
	c.log.Append("Defeat all the enemies, find the exit, and escape!")
	c.log.Append("Press [W] to go up, [S] to go down, [A] to go left, [D] to go right.")
	c.log.Append("Remember to press [enter] to enter your input!")
	return c, nil
}

// enterLevel builds the grid for the 1-based level index.
func (c *Controller) enterLevel(index int) error {
	def, err := c.levels.Level(index)
	if err != nil {
		return err
	}
	grid, startX, startY, err := world.BuildLevel(def, c.enemies, c.rng)
	if err != nil {
		return err
	}
	c.grid = grid
	c.levelIndex = index
	c.startX, c.startY = startX, startY
	return nil
}

// Run drives the render/read/dispatch loop until the player quits, wins,
// or is defeated. An IO read error is a graceful quit, not a failure.
func (c *Controller) Run(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "game.session",
		trace.WithAttributes(attribute.String("session.id", c.sessionID)))
	defer span.End()

	c.running = true
	c.sessionStart = time.Now()

	for c.running {
		c.io.Render(c.view())
		line, err := c.io.ReadLine()
		if err != nil {
			c.log.Append("You quit the adventure.")
			break
		}
		c.step(ctx, strings.ToLower(strings.TrimSpace(line)))
	}

	span.SetAttributes(
		attribute.Int("game.level", c.levelIndex),
		attribute.Int("game.gold", c.player.Gold),
		attribute.Float64("game.play_time_seconds", c.playTime()),
	)
	c.io.Render(c.view())
	return nil
}

// step dispatches one command. Movement commands fall through to the move
// handler; everything else completes within its own case.
func (c *Controller) step(ctx context.Context, command string) {
	if command == "" {
		return
	}
	ctx, span := c.tracer.Start(ctx, "game.turn",
		trace.WithAttributes(attribute.String("turn.command", command)))
	defer span.End()

	currentTile := c.grid.At(c.player.X, c.player.Y)

	if c.blockedByEnemy(currentTile, command) {
		c.log.Append("You can't move! There is a %s blocking your way.", currentTile.Enemy().Name)
		c.log.Append("Press [F] to fight, [R] to run away, or [U] to use an item.")
		return
	}

	var dx, dy int
	switch command {
	case "q":
		c.log.Append("You quit the adventure.")
		c.running = false
		return
	case "w":
		dy = -1
	case "s":
		dy = 1
	case "a":
		dx = -1
	case "d":
		dx = 1
	case "t":
		c.handleTake(currentTile)
		return
	case "u":
		c.handleUse(currentTile)
		return
	case "f":
		c.handleFight(currentTile)
		return
	case "r":
		c.handleFlee(currentTile)
		return
	case "p":
		c.handleSave(ctx)
		return
	case "l":
		c.handleLoad(ctx)
		return
	default:
		c.log.Append("Unknown command.")
		return
	}

	// Any movement attempt ends the fled truce.
	c.fled = false
	c.handleMove(ctx, dx, dy)
}

// blockedByEnemy reports whether a movement command must be refused
// because an enemy shares the player's tile and the player has not fled.
func (c *Controller) blockedByEnemy(tile world.Tile, command string) bool {
	if c.fled || tile == nil || tile.Enemy() == nil {
		return false
	}
	switch command {
	case "w", "a", "s", "d":
		return true
	}
	return false
}

// playTime returns total play time in seconds: the carried-in accumulation
// plus the live session's share.
func (c *Controller) playTime() float64 {
	return c.accumulated + time.Since(c.sessionStart).Seconds()
}
