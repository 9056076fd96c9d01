package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Consumer tails the audit stream through a consumer group and logs each
// exchange. Used by cmd/audit to follow guardrail activity live.
type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, stream string, groupID string, consumerName string, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Audit consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var exchange models.Exchange
	if err := json.Unmarshal([]byte(payload), &exchange); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode exchange")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	event := c.logger.Info().
		Str("id", msg.ID).
		Str("session_id", exchange.SessionID).
		Bool("monitored", exchange.Monitored)

	for _, outcome := range exchange.Outcomes {
		if !outcome.Passed {
			if v := outcome.FirstBlocking(); v != nil {
				event = event.
					Str("blocked_direction", string(outcome.Direction)).
					Str("blocked_category", string(v.Category)).
					Str("blocked_detail", v.Detail)
			}
		}
	}

	event.Msg("Exchange")
	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
