package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eliasstats/utils"

	"github.com/redis/go-redis/v9"
)

const (
	// streams are trimmed to roughly this many entries
	maxStreamLen = 1000

	blockDuration = 5 * time.Second
)

// RunSummary is published once a scrape run finishes, successfully or not.
type RunSummary struct {
	RunID      int64     `json:"run_id"`
	Status     string    `json:"status"`
	Categories int       `json:"categories"`
	Records    int       `json:"records"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

type Publisher interface {
	PublishRun(ctx context.Context, s RunSummary) error
}

// Nop drops every summary. It stands in when no redis url is configured.
type Nop struct{}

func (Nop) PublishRun(context.Context, RunSummary) error { return nil }

// StreamPublisher appends run summaries to a redis stream.
type StreamPublisher struct {
	client *redis.Client
	stream string
}

func NewStreamPublisher(client *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream}
}

// Connect parses a redis:// url and checks the server answers.
func Connect(ctx context.Context, url, stream string) (*StreamPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, utils.ErrorWithTrace(fmt.Errorf("redis ping: %w", err))
	}
	return NewStreamPublisher(client, stream), nil
}

func (p *StreamPublisher) Close() error {
	return p.client.Close()
}

func summaryValues(s RunSummary) (map[string]interface{}, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling run summary: %w", err)
	}
	return map[string]interface{}{
		"data":   string(data),
		"run_id": s.RunID,
		"status": s.Status,
	}, nil
}

func (p *StreamPublisher) PublishRun(ctx context.Context, s RunSummary) error {
	values, err := summaryValues(s)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

// Watch calls fn for every summary published after Watch starts. It blocks
// until ctx is done.
func (p *StreamPublisher) Watch(ctx context.Context, fn func(RunSummary)) error {
	lastID := "$"
	for {
		streams, err := p.client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{p.stream, lastID},
			Count:   100,
			Block:   blockDuration,
		}).Result()
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			slog.Warn("run stream read failed", "stream", p.stream, "err", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				s, err := decodeSummary(msg.Values)
				if err != nil {
					slog.Warn("skipping run stream message", "id", msg.ID, "err", err)
					continue
				}
				fn(s)
			}
		}
	}
}

func decodeSummary(values map[string]interface{}) (RunSummary, error) {
	s := RunSummary{}
	data, ok := values["data"].(string)
	if !ok {
		return s, fmt.Errorf("message has no data field: %v", values)
	}
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return s, err
	}
	return s, nil
}
