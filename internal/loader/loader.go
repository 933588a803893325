// Package loader appends normalized rows to the warehouse. The write mode is
// strictly additive; any authentication, schema, or connectivity failure
// propagates and fails the run.
package loader

import (
	"context"

	"github.com/projeto-datajobs/go-etl/internal/domain"
)

// Loader is the warehouse append operation.
type Loader interface {
	// Append adds the rows to the destination table and reports the resulting
	// table size.
	Append(ctx context.Context, rows []domain.NormalizedPosting) (*AppendReport, error)
}

// AppendReport describes the destination table after a successful append.
type AppendReport struct {
	Table        string
	TotalRows    int64
	TotalColumns int
}

// Columns lists the destination schema's column names in table order.
var Columns = []string{
	"job_id", "date", "company_name", "via", "xp", "new_title",
	"cidade", "estado", "is_remote", "hard_skills", "complemento",
	"soft_skills", "graduacoes", "metodologia_trabalho", "tipo_contrato",
}
