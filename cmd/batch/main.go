package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dvoicu/deploy-assistant/internal/batch"
	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/dvoicu/deploy-assistant/internal/setup"
)

// Batch mode replays a JSONL transcript of texts through the guardrail
// evaluator, without invoking the agent. Useful for regression-testing a
// configuration change against recorded traffic.
func main() {
	startTime := time.Now()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	input := flag.String("input", "", "Input JSONL file, or - for stdin")
	output := flag.String("output", "", "Output JSONL file, defaults to stdout")
	continueOnError := flag.Bool("continue-on-error", true, "Continue on evaluation failures")
	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("Reading input file")
	}

	var outputFile io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
	}

	reader := batch.NewReader(inputFile, deps.Logger)
	encoder := json.NewEncoder(outputFile)

	total, malformed, blocked := 0, 0, 0
	blockedByCategory := map[models.Category]int{}

	for record := range reader.ReadAll(ctx) {
		total++

		if record.Error != nil {
			malformed++
			continue
		}

		direction := models.Direction(record.Direction)
		if direction != models.DirectionInput && direction != models.DirectionOutput {
			direction = models.DirectionInput
		}

		outcome, err := deps.Evaluator.Evaluate(ctx, record.Text, direction)
		if err != nil {
			log.Error().Err(err).Int("line", record.LineNumber).Msg("Evaluation failed")
			if *continueOnError {
				continue
			}
			os.Exit(1)
		}

		if !outcome.Passed {
			blocked++
			if v := outcome.FirstBlocking(); v != nil {
				blockedByCategory[v.Category]++
			}
		}

		if err := encoder.Encode(outcome); err != nil {
			log.Fatal().Err(err).Msg("Failed to write outcome")
		}
	}

	summary := log.Info().
		Int("total", total).
		Int("malformed", malformed).
		Int("blocked", blocked).
		Dur("duration", time.Since(startTime))
	for category, count := range blockedByCategory {
		summary = summary.Int("blocked_"+string(category), count)
	}
	summary.Msg("Batch replay complete")
}
