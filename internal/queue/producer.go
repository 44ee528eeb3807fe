package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"compass.app/intake/internal/model"
)

type Producer interface {
	Publish(ctx context.Context, event model.RecordEvent) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, event model.RecordEvent) error {
	recordJSON, err := json.Marshal(event.Record)
	if err != nil {
		return fmt.Errorf("marshaling record image: %w", err)
	}

	fields := map[string]any{
		"event_type": string(event.EventType),
		"record":     string(recordJSON),
	}
	if event.TraceID != "" {
		fields["trace_id"] = event.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("publish record event: %w", err)
	}

	p.logger.InfoContext(ctx, "published record event",
		"event_type", event.EventType,
		"reference_number", event.Record.ReferenceNumber)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
