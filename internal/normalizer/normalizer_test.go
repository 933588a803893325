package normalizer

import (
	"testing"
	"time"

	"github.com/projeto-datajobs/go-etl/internal/domain"
)

func testNormalizer() *Normalizer {
	return &Normalizer{now: func() time.Time {
		return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	}}
}

func posting(fields map[string]any) *domain.RawPosting {
	return &domain.RawPosting{RawData: fields}
}

func singleGroup(postings ...*domain.RawPosting) *domain.RawBatch {
	return &domain.RawBatch{
		CollectedAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		Groups:      []domain.ProfessionGroup{{Profession: "Analista de Dados", Postings: postings}},
	}
}

func TestNormalizeEmptyBatch(t *testing.T) {
	rows := testNormalizer().Normalize(&domain.RawBatch{})
	if len(rows) != 0 {
		t.Fatalf("Normalize(empty) = %d rows, want 0", len(rows))
	}
}

func TestDeduplicateKeepsFirstOccurrence(t *testing.T) {
	first := map[string]any{
		"title":        "Analista de Dados",
		"company_name": "Empresa A",
		"description":  "Vaga de dados",
		"job_id":       "id-1",
	}
	duplicate := map[string]any{
		"title":        "Analista de Dados",
		"company_name": "Empresa A",
		"description":  "Vaga de dados",
		"job_id":       "id-2",
	}
	other := map[string]any{
		"title":        "Cientista de Dados",
		"company_name": "Empresa B",
		"description":  "Outra vaga",
		"job_id":       "id-3",
	}

	rows := testNormalizer().Normalize(singleGroup(posting(first), posting(duplicate), posting(other)))
	if len(rows) != 2 {
		t.Fatalf("Normalize = %d rows, want 2", len(rows))
	}
	if rows[0].JobID != "id-1" {
		t.Errorf("rows[0].JobID = %s, want id-1 (first occurrence kept)", rows[0].JobID)
	}
	if rows[1].JobID != "id-3" {
		t.Errorf("rows[1].JobID = %s, want id-3 (survivor order preserved)", rows[1].JobID)
	}
}

func TestDeduplicateIsIdempotent(t *testing.T) {
	postings := []*domain.RawPosting{
		posting(map[string]any{"title": "A", "company_name": "X", "description": "d1", "job_id": "1"}),
		posting(map[string]any{"title": "A", "company_name": "X", "description": "d1", "job_id": "2"}),
		posting(map[string]any{"title": "B", "company_name": "Y", "description": "d2", "job_id": "3"}),
	}

	once := testNormalizer().Normalize(singleGroup(postings...))

	// Re-running over the surviving triples must be a fixed point.
	var survivors []*domain.RawPosting
	survivors = append(survivors, postings[0], postings[2])
	twice := testNormalizer().Normalize(singleGroup(survivors...))

	if len(once) != len(twice) {
		t.Fatalf("dedup not idempotent: %d rows then %d rows", len(once), len(twice))
	}
	for i := range once {
		if once[i].JobID != twice[i].JobID {
			t.Errorf("row %d: JobID %s != %s", i, once[i].JobID, twice[i].JobID)
		}
	}
}

func TestEveryFieldPopulatedForEmptyPosting(t *testing.T) {
	rows := testNormalizer().Normalize(singleGroup(posting(map[string]any{})))
	if len(rows) != 1 {
		t.Fatalf("Normalize = %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.CompanyName != "None" {
		t.Errorf("CompanyName = %q, want None", row.CompanyName)
	}
	if row.XP != NaoInformado {
		t.Errorf("XP = %q, want %q", row.XP, NaoInformado)
	}
	if row.NewTitle != "None" {
		t.Errorf("NewTitle = %q, want the stringified raw title", row.NewTitle)
	}
	if row.Estado != "None" || row.Cidade != "None" {
		t.Errorf("Estado/Cidade = %q/%q, want None/None", row.Estado, row.Cidade)
	}
	if row.Date != "2026-08-31" {
		t.Errorf("Date = %q, want 2026-08-31", row.Date)
	}
	if row.IsRemote {
		t.Error("IsRemote = true, want false")
	}
	if row.HardSkills != "" || row.SoftSkills != "" {
		t.Errorf("skills = %q/%q, want empty strings", row.HardSkills, row.SoftSkills)
	}
}

func TestExperienceExtraction(t *testing.T) {
	tests := []struct {
		name     string
		combined string
		want     string
	}{
		{"senior abbreviation", "Buscamos um Sr. Data Engineer", "Sênior"},
		{"pleno lowercase", "vaga para analista pleno de dados", "Pleno"},
		{"junior accented", "oportunidade Júnior em BI", "Júnior"},
		{"especialista maps to senior", "Especialista em engenharia de dados", "Sênior"},
		{"roman numeral II", "Analista de Dados II para squad de vendas", "Pleno"},
		{"roman numeral III not shadowed", "Analista de Dados III", "Sênior"},
		{"no token", "Data Analyst para time de produto", NaoInformado},
		{"substring does not count", "seniority matters", NaoInformado},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canonicalExperience(firstExperienceToken(tt.combined))
			if got != tt.want {
				t.Errorf("experience(%q) = %q, want %q", tt.combined, got, tt.want)
			}
		})
	}
}

func TestCanonicalExperienceExactValues(t *testing.T) {
	tests := []struct{ token, want string }{
		{"Sr", "Sênior"},
		{"pleno", "Pleno"},
		{"I", "Júnior"},
		{"Analyst", "Analyst"}, // outside the synonym sets, passes through
		{NaoInformado, NaoInformado},
	}
	for _, tt := range tests {
		if got := canonicalExperience(tt.token); got != tt.want {
			t.Errorf("canonicalExperience(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestCanonicalTitleFirstMatchWins(t *testing.T) {
	tests := []struct{ title, want string }{
		{"Engenheiro de Dados Senior", "Engenheiro de Dados"},
		{"Vaga: analista de dados pleno", "Analista de Dados"},
		{"CIENTISTA DE DADOS - remoto", "Cientista de Dados"},
		{"Desenvolvedor Backend", "Desenvolvedor Backend"}, // no match, verbatim
	}
	for _, tt := range tests {
		if got := canonicalTitle(tt.title); got != tt.want {
			t.Errorf("canonicalTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestLocationPlaceholders(t *testing.T) {
	remote := posting(map[string]any{
		"title":        "Analista de Dados",
		"company_name": "Empresa A",
		"description":  "vaga de dados",
		"location":     "Qualquer lugar",
	})
	country := posting(map[string]any{
		"title":        "Cientista de Dados",
		"company_name": "Empresa B",
		"description":  "outra vaga de dados",
		"location":     "Brasil",
	})

	rows := testNormalizer().Normalize(singleGroup(remote, country))
	if len(rows) != 2 {
		t.Fatalf("Normalize = %d rows, want 2", len(rows))
	}
	if rows[0].Estado != "Remoto" || rows[0].Cidade != "Remoto" {
		t.Errorf("Qualquer lugar: estado/cidade = %q/%q, want Remoto/Remoto", rows[0].Estado, rows[0].Cidade)
	}
	if rows[1].Estado != NaoInformado || rows[1].Cidade != NaoInformado {
		t.Errorf("Brasil: estado/cidade = %q/%q, want %q/%q", rows[1].Estado, rows[1].Cidade, NaoInformado, NaoInformado)
	}
}

func TestStateMappedToCode(t *testing.T) {
	row := posting(map[string]any{
		"title":        "Analista de Dados",
		"company_name": "Empresa A",
		"description":  "vaga",
		"location":     "São Paulo, SP",
	})

	rows := testNormalizer().Normalize(singleGroup(row))
	if rows[0].Estado != "SP" {
		t.Errorf("Estado = %q, want SP", rows[0].Estado)
	}
	if rows[0].Cidade != "São Paulo" {
		t.Errorf("Cidade = %q, want São Paulo", rows[0].Cidade)
	}
}

func TestStateBackfillFromDescription(t *testing.T) {
	// One row contributes "Minas Gerais" to the batch's state set; the
	// placeholder row borrows it from its own description.
	contributor := posting(map[string]any{
		"title":        "Analista de Dados",
		"company_name": "Empresa A",
		"description":  "vaga presencial",
		"location":     "Minas Gerais",
	})
	placeholder := posting(map[string]any{
		"title":        "Cientista de Dados",
		"company_name": "Empresa B",
		"description":  "vaga em Minas Gerais, atuação híbrida",
		"location":     "Brasil",
	})

	rows := testNormalizer().Normalize(singleGroup(contributor, placeholder))
	if len(rows) != 2 {
		t.Fatalf("Normalize = %d rows, want 2", len(rows))
	}
	if rows[1].Estado != "MG" {
		t.Errorf("backfilled Estado = %q, want MG", rows[1].Estado)
	}
}

func TestStateBackfillMissKeepsComputedValue(t *testing.T) {
	placeholder := posting(map[string]any{
		"title":        "Cientista de Dados",
		"company_name": "Empresa B",
		"description":  "vaga sem local definido",
		"location":     "Brasil",
	})

	rows := testNormalizer().Normalize(singleGroup(placeholder))
	// No other batch state matches the text, so the computed value survives
	// and the placeholder pass turns the literal Brasil into Não Informado.
	if rows[0].Estado != NaoInformado {
		t.Errorf("Estado = %q, want %q", rows[0].Estado, NaoInformado)
	}
}

func TestRemoteFlag(t *testing.T) {
	tests := []struct {
		name string
		ext  any
		want bool
	}{
		{"flag true", map[string]any{"work_from_home": true, "posted_at": "hoje"}, true},
		{"flag false", map[string]any{"work_from_home": false}, false},
		{"flag absent", map[string]any{"posted_at": "hoje"}, false},
		{"field absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := map[string]any{
				"title":        "Analista de Dados " + tt.name,
				"company_name": "Empresa",
				"description":  "vaga " + tt.name,
			}
			if tt.ext != nil {
				fields["detected_extensions"] = tt.ext
			}
			rows := testNormalizer().Normalize(singleGroup(posting(fields)))
			if rows[0].IsRemote != tt.want {
				t.Errorf("IsRemote = %v, want %v", rows[0].IsRemote, tt.want)
			}
		})
	}
}

func TestViaMarkerStripped(t *testing.T) {
	row := posting(map[string]any{
		"title":        "Analista de Dados",
		"company_name": "Empresa",
		"description":  "vaga",
		"via":          "via LinkedIn",
	})
	rows := testNormalizer().Normalize(singleGroup(row))
	if rows[0].Via != " LinkedIn" {
		t.Errorf("Via = %q, want %q", rows[0].Via, " LinkedIn")
	}
}

func TestSkillExtractionCollectsAllMatchesInTableOrder(t *testing.T) {
	row := posting(map[string]any{
		"title":        "Engenheiro de Dados",
		"company_name": "Empresa",
		"description":  "Experiência com Python e SQL, contratação CLT, metodologia Scrum",
	})
	rows := testNormalizer().Normalize(singleGroup(row))

	if rows[0].HardSkills != "Python,SQL" {
		t.Errorf("HardSkills = %q, want Python,SQL", rows[0].HardSkills)
	}
	if rows[0].TipoContrato != "CLT" {
		t.Errorf("TipoContrato = %q, want CLT", rows[0].TipoContrato)
	}
	if rows[0].Metodologia != "Scrum" {
		t.Errorf("Metodologia = %q, want Scrum", rows[0].Metodologia)
	}
	if rows[0].Complemento != "" {
		t.Errorf("Complemento = %q, want empty", rows[0].Complemento)
	}
}

func TestEndToEndFourProfessions(t *testing.T) {
	batch := &domain.RawBatch{
		CollectedAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		Groups: []domain.ProfessionGroup{
			{Profession: "Analista de Dados", Postings: []*domain.RawPosting{posting(map[string]any{
				"title":               "Analista de Dados Júnior",
				"company_name":        "Loja Azul",
				"location":            "São Paulo, SP",
				"description":         "Dashboards e relatórios em Power BI e Excel. Regime CLT.",
				"via":                 "via Gupy",
				"job_id":              "a1",
				"detected_extensions": map[string]any{"work_from_home": false},
			})}},
			{Profession: "Analista de Inteligência de Dados", Postings: []*domain.RawPosting{posting(map[string]any{
				"title":               "Analista de BI Pleno",
				"company_name":        "Banco Verde",
				"location":            "Rio de Janeiro - RJ",
				"description":         "SQL e Tableau para squads ágeis. Graduação em Estatística.",
				"via":                 "via LinkedIn",
				"job_id":              "b2",
				"detected_extensions": map[string]any{"work_from_home": false},
			})}},
			{Profession: "Cientista de Dados", Postings: []*domain.RawPosting{posting(map[string]any{
				"title":               "Data Scientist Sr",
				"company_name":        "Startup Roxa",
				"location":            "Qualquer lugar",
				"description":         "Machine Learning with Python and Airflow. Remote-first team.",
				"via":                 "via Indeed",
				"job_id":              "c3",
				"detected_extensions": map[string]any{"work_from_home": true},
			})}},
			{Profession: "Engenheiro de Dados", Postings: []*domain.RawPosting{posting(map[string]any{
				"title":               "Engenheiro de Dados III",
				"company_name":        "Indústria Cinza",
				"location":            "Belo Horizonte - MG",
				"description":         "Pipelines ETL com Kafka, Spark e Airflow na AWS. Contratação PJ.",
				"via":                 "via Vagas",
				"job_id":              "d4",
				"detected_extensions": map[string]any{"work_from_home": false},
			})}},
		},
	}

	rows := testNormalizer().Normalize(batch)
	if len(rows) != 4 {
		t.Fatalf("Normalize = %d rows, want 4", len(rows))
	}

	// Group order preserved through the merge.
	wantIDs := []string{"a1", "b2", "c3", "d4"}
	for i, id := range wantIDs {
		if rows[i].JobID != id {
			t.Errorf("rows[%d].JobID = %s, want %s", i, rows[i].JobID, id)
		}
	}

	wantXP := []string{"Júnior", "Pleno", "Sênior", "Sênior"}
	for i, xp := range wantXP {
		if rows[i].XP != xp {
			t.Errorf("rows[%d].XP = %q, want %q", i, rows[i].XP, xp)
		}
	}

	wantTitle := []string{"Analista de Dados", "Analista de BI", "Data Scientist", "Engenheiro de Dados"}
	for i, title := range wantTitle {
		if rows[i].NewTitle != title {
			t.Errorf("rows[%d].NewTitle = %q, want %q", i, rows[i].NewTitle, title)
		}
	}

	wantEstado := []string{"SP", "RJ", "Remoto", "MG"}
	for i, estado := range wantEstado {
		if rows[i].Estado != estado {
			t.Errorf("rows[%d].Estado = %q, want %q", i, rows[i].Estado, estado)
		}
	}

	if !rows[2].IsRemote {
		t.Error("rows[2].IsRemote = false, want true")
	}
	if rows[0].IsRemote || rows[1].IsRemote || rows[3].IsRemote {
		t.Error("only the remote posting should flag IsRemote")
	}

	if rows[3].HardSkills != "Spark,Airflow,Kafka,AWS" {
		t.Errorf("rows[3].HardSkills = %q, want Spark,Airflow,Kafka,AWS", rows[3].HardSkills)
	}
	if rows[3].TipoContrato != "PJ" {
		t.Errorf("rows[3].TipoContrato = %q, want PJ", rows[3].TipoContrato)
	}

	for i, row := range rows {
		if row.Date != "2026-08-31" {
			t.Errorf("rows[%d].Date = %q, want 2026-08-31", i, row.Date)
		}
		if row.Via == "" || row.XP == "" || row.NewTitle == "" || row.Estado == "" || row.Cidade == "" {
			t.Errorf("rows[%d] has an unpopulated projected column: %+v", i, row)
		}
	}
}
