package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/dvoicu/deploy-assistant/internal/setup"
)

func main() {
	text := flag.String("d", "", "Text to check")
	direction := flag.String("direction", "input", "Validator set to apply: input or output")
	flag.Parse()

	if *text == "" {
		fmt.Fprintln(os.Stderr, "Usage: check -d '<text>' [-direction input|output]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*text, *direction); err != nil {
		log.Error().Err(err).Msg("check failed")
		os.Exit(1)
	}
}

func run(text, direction string) error {
	_ = godotenv.Load()

	d := models.Direction(direction)
	if d != models.DirectionInput && d != models.DirectionOutput {
		return fmt.Errorf("invalid direction %q", direction)
	}

	ctx := context.Background()
	logger := log.Logger

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		return err
	}

	outcome, err := deps.Evaluator.Evaluate(ctx, text, d)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcome)
}
