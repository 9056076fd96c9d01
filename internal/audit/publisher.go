package audit

import (
	"context"
	"encoding/json"

	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Publisher appends each chat exchange to a Redis stream for audit.
// Recording is best-effort: a failed append is logged and the chat
// response still goes out.
type Publisher struct {
	client *redis.Client
	stream string
	logger *zerolog.Logger
}

func NewPublisher(client *redis.Client, stream string, logger *zerolog.Logger) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *Publisher) Record(ctx context.Context, exchange models.Exchange) {
	payload, err := json.Marshal(exchange)
	if err != nil {
		p.logger.Error().Err(err).Str("session_id", exchange.SessionID).Msg("Failed to encode exchange")
		return
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{"payload": string(payload)},
	}).Result()
	if err != nil {
		p.logger.Error().Err(err).Str("session_id", exchange.SessionID).Msg("Failed to publish exchange")
		return
	}

	p.logger.Debug().
		Str("stream", p.stream).
		Str("id", id).
		Str("session_id", exchange.SessionID).
		Bool("monitored", exchange.Monitored).
		Msg("Exchange recorded")
}

// Nop is the monitor used when no Redis address is configured.
type Nop struct{}

func (Nop) Record(context.Context, models.Exchange) {}
