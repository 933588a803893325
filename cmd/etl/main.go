// Command etl runs the three pipeline stages sequentially in one process:
// collect raw postings per profession, normalize them into the fifteen
// output columns, and append the batch to the warehouse. For setups where
// the scheduler runs stages as separate processes, use cmd/collector,
// cmd/normalizer and cmd/loader instead.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/projeto-datajobs/go-etl/internal/cleaner"
	"github.com/projeto-datajobs/go-etl/internal/collector"
	"github.com/projeto-datajobs/go-etl/internal/config"
	"github.com/projeto-datajobs/go-etl/internal/domain"
	"github.com/projeto-datajobs/go-etl/internal/loader"
	"github.com/projeto-datajobs/go-etl/internal/normalizer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting daily ETL run")

	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Collect
	client := collector.NewClient(cfg.Search.BaseURL)
	clean := cleaner.New()
	batch := domain.RawBatch{CollectedAt: time.Now()}
	for _, p := range cfg.Search.Professions {
		postings := client.Collect(ctx, p.Query, p.APIKey)
		for _, posting := range postings {
			clean.CleanPosting(posting.RawData)
		}
		batch.Groups = append(batch.Groups, domain.ProfessionGroup{
			Profession: p.Query,
			Postings:   postings,
		})
	}
	log.Printf("Collected %d raw postings", len(batch.Postings()))

	// Normalize
	rows := normalizer.NewNormalizer().Normalize(&batch)
	log.Printf("Normalized %d rows", len(rows))

	// Load
	warehouse := newWarehouse(ctx, cfg)
	report, err := warehouse.Append(ctx, rows)
	if err != nil {
		log.Fatalf("Warehouse append failed: %v", err)
	}
	log.Printf("Loaded %d rows and %d columns to %s (table now at %d rows)",
		len(rows), report.TotalColumns, report.Table, report.TotalRows)

	if cfg.Elasticsearch.Enabled() {
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
}

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
