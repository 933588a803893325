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
	"github.com/projeto-datajobs/go-etl/internal/loader"
	"github.com/projeto-datajobs/go-etl/internal/queue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting load stage")

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

	consumer := queue.NewConsumer(rdb, cfg.Redis.NormalizedQueue, 30*time.Second)
	payload, err := consumer.Consume(ctx)
	if err != nil {
		log.Fatalf("Consume normalized rows: %v", err)
	}
	if payload == nil {
		log.Fatalf("No normalized rows queued on %s", cfg.Redis.NormalizedQueue)
	}

	var rows []domain.NormalizedPosting
	if err := json.Unmarshal(payload, &rows); err != nil {
		log.Fatalf("Unmarshal normalized rows: %v", err)
	}

	warehouse := newWarehouse(ctx, cfg)
	report, err := warehouse.Append(ctx, rows)
	if err != nil {
		log.Fatalf("Warehouse append failed: %v", err)
	}
	log.Printf("Loaded %d rows and %d columns to %s (table now at %d rows)",
		len(rows), report.TotalColumns, report.Table, report.TotalRows)

	if cfg.Elasticsearch.Enabled() {
		mirrorRows(ctx, cfg, rows)
	}
}

// newWarehouse builds the configured warehouse backend, failing the run on
// any connection or credentials problem.
func newWarehouse(ctx context.Context, cfg *config.Config) loader.Loader {
	switch cfg.Warehouse.Backend {
	case "postgres":
		l, err := loader.NewPostgresLoader(cfg.Warehouse.PostgresURL, cfg.Warehouse.PostgresTable)
		if err != nil {
			log.Fatalf("PostgreSQL connection failed: %v", err)
		}
		log.Println("PostgreSQL connected")
		return l
	default:
		l, err := loader.NewBigQueryLoader(ctx, cfg.Warehouse.CredentialsFile)
		if err != nil {
			log.Fatalf("BigQuery connection failed: %v", err)
		}
		log.Println("BigQuery connected")
		return l
	}
}

// mirrorRows copies the appended batch into the search index. Mirror
// failures are logged, not fatal: the warehouse append already succeeded.
func mirrorRows(ctx context.Context, cfg *config.Config, rows []domain.NormalizedPosting) {
	mirror, err := loader.NewSearchMirror(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
	if err != nil {
		log.Printf("Elasticsearch connection failed: %v", err)
		return
	}
	if err := mirror.EnsureIndex(ctx); err != nil {
		log.Printf("Ensure index failed: %v", err)
	}
	if err := mirror.BulkIndex(ctx, rows); err != nil {
		log.Printf("Search mirror index failed: %v", err)
		return
	}
	log.Printf("Mirrored %d rows to index %s", len(rows), cfg.Elasticsearch.Index)
}
