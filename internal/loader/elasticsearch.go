package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/projeto-datajobs/go-etl/internal/domain"
)

// SearchMirror bulk-indexes appended batches into Elasticsearch for ad-hoc
// querying. It is a mirror, not the warehouse: failures here are reported by
// the caller but do not define the run outcome.
type SearchMirror struct {
	client    *elasticsearch.Client
	indexName string
}

// NewSearchMirror connects to the cluster and verifies it responds.
func NewSearchMirror(addresses []string, indexName string) (*SearchMirror, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &SearchMirror{client: client, indexName: indexName}, nil
}

// BulkIndex writes the rows with the bulk API. Document IDs combine job_id
// and the batch date, since the same posting may be appended on several days.
func (m *SearchMirror) BulkIndex(ctx context.Context, rows []domain.NormalizedPosting) error {
	if len(rows) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, row := range rows {
		meta := map[string]any{
			"index": map[string]any{
				"_index": m.indexName,
				"_id":    row.JobID + ":" + row.Date,
			},
		}
		metaBytes, _ := json.Marshal(meta)
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		docBytes, err := json.Marshal(row)
		if err != nil {
			log.Printf("marshal row %s: %v", row.JobID, err)
			continue
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := m.client.Bulk(bytes.NewReader(buf.Bytes()), m.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string `json:"_id"`
				Status int    `json:"status"`
				Error  struct {
					Type   string `json:"type"`
					Reason string `json:"reason"`
				} `json:"error"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("parse bulk response: %w", err)
	}
	if bulkRes.Errors {
		for _, item := range bulkRes.Items {
			if item.Index.Status >= 400 {
				log.Printf("bulk index error for %s: %s - %s",
					item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason)
			}
		}
	}

	return nil
}

// EnsureIndex creates the index with Portuguese-friendly analysis settings
// if it does not exist yet.
func (m *SearchMirror) EnsureIndex(ctx context.Context) error {
	res, err := m.client.Indices.Exists([]string{m.indexName})
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	mapping := `{
		"settings": {
			"analysis": {
				"analyzer": {
					"portuguese_analyzer": {
						"type": "custom",
						"tokenizer": "standard",
						"filter": ["lowercase", "asciifolding"]
					}
				}
			}
		},
		"mappings": {
			"properties": {
				"job_id": {"type": "keyword"},
				"date": {"type": "date"},
				"company_name": {
					"type": "text",
					"analyzer": "portuguese_analyzer",
					"fields": {"keyword": {"type": "keyword"}}
				},
				"via": {"type": "keyword"},
				"xp": {"type": "keyword"},
				"new_title": {
					"type": "text",
					"analyzer": "portuguese_analyzer",
					"fields": {"keyword": {"type": "keyword"}}
				},
				"cidade": {"type": "keyword"},
				"estado": {"type": "keyword"},
				"is_remote": {"type": "boolean"},
				"hard_skills": {"type": "text", "analyzer": "portuguese_analyzer"},
				"complemento": {"type": "text", "analyzer": "portuguese_analyzer"},
				"soft_skills": {"type": "text", "analyzer": "portuguese_analyzer"},
				"graduacoes": {"type": "text", "analyzer": "portuguese_analyzer"},
				"metodologia_trabalho": {"type": "keyword"},
				"tipo_contrato": {"type": "keyword"}
			}
		}
	}`

	res, err = m.client.Indices.Create(
		m.indexName,
		m.client.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}

	return nil
}
