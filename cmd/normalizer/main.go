package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/projeto-datajobs/go-etl/internal/config"
	"github.com/projeto-datajobs/go-etl/internal/domain"
	"github.com/projeto-datajobs/go-etl/internal/normalizer"
	"github.com/projeto-datajobs/go-etl/internal/queue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting normalize stage")

	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Redis connected")

	consumer := queue.NewConsumer(rdb, cfg.Redis.RawQueue, 30*time.Second)
	payload, err := consumer.Consume(ctx)
	if err != nil {
		log.Fatalf("Consume raw batch: %v", err)
	}
	if payload == nil {
		log.Fatalf("No raw batch queued on %s", cfg.Redis.RawQueue)
	}

	var batch domain.RawBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		log.Fatalf("Unmarshal raw batch: %v", err)
	}

	rows := normalizer.NewNormalizer().Normalize(&batch)
	log.Printf("Normalized %d rows from %d raw postings", len(rows), len(batch.Postings()))

	out, err := json.Marshal(rows)
	if err != nil {
		log.Fatalf("Marshal normalized rows: %v", err)
	}

	publisher := queue.NewPublisher(rdb, cfg.Redis.NormalizedQueue)
	if err := publisher.Publish(ctx, out); err != nil {
		log.Fatalf("Publish normalized rows: %v", err)
	}

	log.Printf("Queued %d bytes on %s", len(out), cfg.Redis.NormalizedQueue)
}
