// Package queue parks the opaque stage payloads in Redis lists so the
// collect, normalize, and load stages can run as separate processes under an
// external scheduler. Payloads are serialized blobs; the queue does not look
// inside them.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes stage payloads onto a Redis list.
type Publisher struct {
	client    *redis.Client
	queueName string
}

// NewPublisher creates a publisher for the named list.
func NewPublisher(client *redis.Client, queueName string) *Publisher {
	return &Publisher{client: client, queueName: queueName}
}

// Publish pushes one payload.
func (p *Publisher) Publish(ctx context.Context, payload []byte) error {
	if err := p.client.LPush(ctx, p.queueName, payload).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", p.queueName, err)
	}
	return nil
}

// Length returns the number of parked payloads.
func (p *Publisher) Length(ctx context.Context) (int64, error) {
	return p.client.LLen(ctx, p.queueName).Result()
}

// Consumer pops stage payloads from a Redis list.
type Consumer struct {
	client    *redis.Client
	queueName string
	timeout   time.Duration
}

// NewConsumer creates a consumer for the named list. timeout bounds how long
// Consume blocks waiting for a payload.
func NewConsumer(client *redis.Client, queueName string, timeout time.Duration) *Consumer {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Consumer{client: client, queueName: queueName, timeout: timeout}
}

// Consume blocks until a payload arrives or the timeout elapses. A nil
// payload with nil error means nothing was queued.
func (c *Consumer) Consume(ctx context.Context) ([]byte, error) {
	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("brpop %s: %w", c.queueName, err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}
