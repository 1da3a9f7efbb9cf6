// Package main is the entry point for DungeonDelve.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeondelve/data"
	"github.com/samdwyer/dungeondelve/internal/game"
	"github.com/samdwyer/dungeondelve/internal/telemetry"
	"github.com/samdwyer/dungeondelve/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_DUNGEONDELVE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	savePath := flag.String("save", "game.json", "path to the save file")
	bestPath := flag.String("best", "highscores.json", "path to the highscore file")
	seed := flag.Int64("seed", 0, "random seed (0 uses the current time)")
	flag.Parse()

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize terminal: %v", err)
	}
	defer screen.Close()

	controller, err := game.New(game.Config{
		IO:       ui.NewTerminal(screen),
		RNG:      rng,
		Levels:   data.MustLoadSource(),
		Enemies:  data.MustLoadEnemyRegistry(),
		SavePath: *savePath,
		BestPath: *bestPath,
		Tracer:   telemetry.Tracer("game"),
	})
	if err != nil {
		screen.Close()
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := controller.Run(ctx); err != nil {
		screen.Close()
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_DUNGEONDELVE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DUNGEONDELVE_DATASET")
	if dataset == "" {
		dataset = "dungeondelve" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
