package domain

import "time"

// RawPosting is one job listing as returned by the search API, kept as the
// untyped field map the API serialized. Every attribute is optional.
type RawPosting struct {
	Profession string         `json:"profession"`
	RawData    map[string]any `json:"raw_data"`
	FetchedAt  time.Time      `json:"fetched_at"`
}

// ProfessionGroup holds the postings collected for a single profession query,
// in the order the API returned them.
type ProfessionGroup struct {
	Profession string        `json:"profession"`
	Postings   []*RawPosting `json:"postings"`
}

// RawBatch is the payload handed from the collect stage to the normalize
// stage. Group order is the collection order and is preserved through the
// merge step.
type RawBatch struct {
	CollectedAt time.Time         `json:"collected_at"`
	Groups      []ProfessionGroup `json:"groups"`
}

// Postings flattens the batch into one sequence, preserving group order and
// per-group row order.
func (b *RawBatch) Postings() []*RawPosting {
	var all []*RawPosting
	for _, g := range b.Groups {
		all = append(all, g.Postings...)
	}
	return all
}

// NormalizedPosting is one output row of the warehouse table. Field order
// matches the destination schema projection.
type NormalizedPosting struct {
	CompanyName  string `json:"company_name"`
	Via          string `json:"via"`
	JobID        string `json:"job_id"`
	Date         string `json:"date"` // batch processing date, YYYY-MM-DD
	XP           string `json:"xp"`
	NewTitle     string `json:"new_title"`
	Estado       string `json:"estado"`
	Cidade       string `json:"cidade"`
	IsRemote     bool   `json:"is_remote"`
	HardSkills   string `json:"hard_skills"`
	Complemento  string `json:"complemento"`
	SoftSkills   string `json:"soft_skills"`
	Graduacoes   string `json:"graduacoes"`
	Metodologia  string `json:"metodologia_trabalho"`
	TipoContrato string `json:"tipo_contrato"`
}
