package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStreamSink appends events to a capped Redis stream.
type RedisStreamSink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// NewRedisStreamSink builds a sink writing to stream, trimmed to roughly maxLen entries.
func NewRedisStreamSink(client redis.Cmdable, stream string, maxLen int64) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream, maxLen: maxLen}
}

// Handle is an EventHandler that writes the event to the stream.
func (s *RedisStreamSink) Handle(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"type":  string(event.Type),
			"event": string(body),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
