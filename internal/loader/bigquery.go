package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/projeto-datajobs/go-etl/internal/domain"
)

// warehouseSchema is the fixed destination schema: fifteen typed columns
// matching NormalizedPosting, date as a calendar date, is_remote boolean.
var warehouseSchema = bigquery.Schema{
	{Name: "job_id", Type: bigquery.StringFieldType},
	{Name: "date", Type: bigquery.DateFieldType},
	{Name: "company_name", Type: bigquery.StringFieldType},
	{Name: "via", Type: bigquery.StringFieldType},
	{Name: "xp", Type: bigquery.StringFieldType},
	{Name: "new_title", Type: bigquery.StringFieldType},
	{Name: "cidade", Type: bigquery.StringFieldType},
	{Name: "estado", Type: bigquery.StringFieldType},
	{Name: "is_remote", Type: bigquery.BooleanFieldType},
	{Name: "hard_skills", Type: bigquery.StringFieldType},
	{Name: "complemento", Type: bigquery.StringFieldType},
	{Name: "soft_skills", Type: bigquery.StringFieldType},
	{Name: "graduacoes", Type: bigquery.StringFieldType},
	{Name: "metodologia_trabalho", Type: bigquery.StringFieldType},
	{Name: "tipo_contrato", Type: bigquery.StringFieldType},
}

// BigQueryLoader appends rows to a BigQuery table via a JSON load job.
type BigQueryLoader struct {
	client  *bigquery.Client
	dataset string
	table   string
}

// NewBigQueryLoader reads the credentials bundle at path: a service-account
// payload that additionally carries table_id as dataset.table (optionally
// project.dataset.table).
func NewBigQueryLoader(ctx context.Context, path string) (*BigQueryLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds struct {
		ProjectID string `json:"project_id"`
		TableID   string `json:"table_id"`
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.TableID == "" {
		return nil, fmt.Errorf("credentials missing table_id")
	}

	project := creds.ProjectID
	parts := strings.Split(creds.TableID, ".")
	var dataset, table string
	switch len(parts) {
	case 2:
		dataset, table = parts[0], parts[1]
	case 3:
		project, dataset, table = parts[0], parts[1], parts[2]
	default:
		return nil, fmt.Errorf("invalid table_id %q", creds.TableID)
	}

	client, err := bigquery.NewClient(ctx, project, option.WithCredentialsJSON(data))
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}

	return &BigQueryLoader{client: client, dataset: dataset, table: table}, nil
}

// Append runs a WriteAppend load job from the serialized rows, then reads
// the table metadata for the resulting row and column count.
func (l *BigQueryLoader) Append(ctx context.Context, rows []domain.NormalizedPosting) (*AppendReport, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, row := range rows {
		if err := enc.Encode(bigQueryRow(row)); err != nil {
			return nil, fmt.Errorf("encode row %s: %w", row.JobID, err)
		}
	}

	src := bigquery.NewReaderSource(&buf)
	src.SourceFormat = bigquery.JSON
	src.Schema = warehouseSchema

	tbl := l.client.Dataset(l.dataset).Table(l.table)
	job := tbl.LoaderFrom(src)
	job.WriteDisposition = bigquery.WriteAppend

	run, err := job.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("start load job: %w", err)
	}
	status, err := run.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("wait load job: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("load job failed: %w", err)
	}

	md, err := tbl.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("table metadata: %w", err)
	}

	return &AppendReport{
		Table:        l.dataset + "." + l.table,
		TotalRows:    int64(md.NumRows),
		TotalColumns: len(md.Schema),
	}, nil
}

// Close releases the underlying client.
func (l *BigQueryLoader) Close() error {
	return l.client.Close()
}

// bigQueryRow renders one row with the destination column names.
func bigQueryRow(r domain.NormalizedPosting) map[string]any {
	return map[string]any{
		"job_id":               r.JobID,
		"date":                 r.Date,
		"company_name":         r.CompanyName,
		"via":                  r.Via,
		"xp":                   r.XP,
		"new_title":            r.NewTitle,
		"cidade":               r.Cidade,
		"estado":               r.Estado,
		"is_remote":            r.IsRemote,
		"hard_skills":          r.HardSkills,
		"complemento":          r.Complemento,
		"soft_skills":          r.SoftSkills,
		"graduacoes":           r.Graduacoes,
		"metodologia_trabalho": r.Metodologia,
		"tipo_contrato":        r.TipoContrato,
	}
}
