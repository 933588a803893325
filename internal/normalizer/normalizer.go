// Package normalizer turns the raw per-profession collections into one
// deduplicated table of structured rows. All classification is dictionary
// and regex matching against the refdata tables; unmatched values resolve to
// explicit placeholders, never to an error.
package normalizer

import (
	"strings"
	"time"

	"github.com/projeto-datajobs/go-etl/internal/domain"
	"github.com/projeto-datajobs/go-etl/internal/refdata"
)

// NaoInformado is the placeholder for fields no heuristic could resolve.
const NaoInformado = "Não Informado"

// Normalizer derives NormalizedPosting rows from a raw batch.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer stamping rows with the current date.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// record is one posting mid-pipeline: every raw field stringified, plus the
// per-row state/city guesses from the first location pass.
type record struct {
	fields   map[string]string
	combined string // description + " " + title
	estado   string
	cidade   string
}

// Normalize runs the full pipeline: merge and stamp, stringify, dedup,
// location split with batch-wide state backfill, classification passes, and
// the fifteen-column projection. An empty batch yields an empty table.
func (n *Normalizer) Normalize(batch *domain.RawBatch) []domain.NormalizedPosting {
	date := n.now().Format("2006-01-02")

	// Merge groups in collection order, stringify every field, and drop rows
	// whose (title, company_name, description) triple was already seen.
	var records []*record
	seen := make(map[string]bool)
	for _, raw := range batch.Postings() {
		fields := stringifyRecord(raw.RawData)
		key := fields["title"] + "\x1f" + fields["company_name"] + "\x1f" + fields["description"]
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, &record{
			fields:   fields,
			combined: fields["description"] + " " + fields["title"],
		})
	}

	// Pass 1: literal state/city guesses, and the distinct states observed in
	// this batch, in first-seen order. Pass 2 resolves placeholder rows
	// against that set, so this must complete for the whole batch first.
	var statesSeen []string
	distinct := make(map[string]bool)
	for _, r := range records {
		r.estado = extractState(r.fields["location"])
		r.cidade = extractCity(r.fields["location"])
		if !distinct[r.estado] {
			distinct[r.estado] = true
			statesSeen = append(statesSeen, r.estado)
		}
	}

	out := make([]domain.NormalizedPosting, 0, len(records))
	for _, r := range records {
		estado := backfillState(r.estado, r.combined, statesSeen)
		if code, ok := refdata.StateCode(estado); ok {
			estado = code
		}

		desc := r.fields["description"]
		out = append(out, domain.NormalizedPosting{
			CompanyName:  r.fields["company_name"],
			Via:          strings.ReplaceAll(r.fields["via"], "via", ""),
			JobID:        r.fields["job_id"],
			Date:         date,
			XP:           canonicalExperience(firstExperienceToken(r.combined)),
			NewTitle:     canonicalTitle(r.fields["title"]),
			Estado:       normalizePlaceholder(estado),
			Cidade:       normalizePlaceholder(r.cidade),
			IsRemote:     isRemote(r.fields["detected_extensions"]),
			HardSkills:   hardSkillTable.extract(desc),
			Complemento:  atividadeTable.extract(desc),
			SoftSkills:   softSkillTable.extract(desc),
			Graduacoes:   graduacaoTable.extract(desc),
			Metodologia:  metodologiaTable.extract(desc),
			TipoContrato: contratoTable.extract(desc),
		})
	}
	return out
}

// canonicalTitle returns the first canonical title that appears, case
// insensitively, inside the raw title, or the raw title verbatim.
func canonicalTitle(title string) string {
	lower := strings.ToLower(title)
	for _, t := range refdata.CanonicalTitles {
		if strings.Contains(lower, strings.ToLower(t)) {
			return t
		}
	}
	return title
}

// backfillState resolves placeholder states against the states observed
// elsewhere in the batch. A state counts as a placeholder when it mentions
// brasil or lugar, or carries an unsplit "(" fragment. The first batch state
// found as a substring of description+title wins, upper-cased; rows with no
// match keep their computed value.
func backfillState(state, combined string, statesSeen []string) string {
	low := strings.ToLower(state)
	if !strings.Contains(low, "brasil") && !strings.Contains(low, "lugar") && !strings.Contains(state, "(") {
		return state
	}
	textLow := strings.ToLower(combined)
	for _, s := range statesSeen {
		if strings.Contains(textLow, strings.ToLower(s)) {
			return strings.ToUpper(s)
		}
	}
	return state
}

// normalizePlaceholder maps the two literal location placeholders the API
// emits for remote and country-wide listings.
func normalizePlaceholder(v string) string {
	switch v {
	case "Qualquer lugar":
		return "Remoto"
	case "Brasil":
		return NaoInformado
	}
	return v
}

// isRemote reports whether the stringified detected_extensions field carries
// an enabled work_from_home flag.
func isRemote(extensions string) bool {
	return strings.Contains(extensions, "work_from_home") && strings.Contains(extensions, "True")
}
