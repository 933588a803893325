package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/projeto-datajobs/go-etl/internal/cleaner"
	"github.com/projeto-datajobs/go-etl/internal/collector"
	"github.com/projeto-datajobs/go-etl/internal/config"
	"github.com/projeto-datajobs/go-etl/internal/domain"
	"github.com/projeto-datajobs/go-etl/internal/queue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting collect stage")

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

	client := collector.NewClient(cfg.Search.BaseURL)
	clean := cleaner.New()

	batch := domain.RawBatch{CollectedAt: time.Now()}
	total := 0
	for _, p := range cfg.Search.Professions {
		if p.APIKey == "" {
			log.Printf("[collector] %s: no API key configured", p.Query)
		}

		postings := client.Collect(ctx, p.Query, p.APIKey)
		for _, posting := range postings {
			clean.CleanPosting(posting.RawData)
		}
		batch.Groups = append(batch.Groups, domain.ProfessionGroup{
			Profession: p.Query,
			Postings:   postings,
		})
		total += len(postings)
	}

	payload, err := json.Marshal(&batch)
	if err != nil {
		log.Fatalf("Marshal raw batch: %v", err)
	}

	publisher := queue.NewPublisher(rdb, cfg.Redis.RawQueue)
	if err := publisher.Publish(ctx, payload); err != nil {
		log.Fatalf("Publish raw batch: %v", err)
	}

	log.Printf("Collected %d postings across %d professions, %d bytes queued on %s",
		total, len(batch.Groups), len(payload), cfg.Redis.RawQueue)
}
