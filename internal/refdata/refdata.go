// Package refdata holds the hand-curated reference tables the classifier
// matches against. Every table is an ordered slice: canonicalization is
// first-match-wins, so load order is part of the contract.
package refdata

// ExperienceTokens are the seniority markers scanned for in
// description+title, in priority order. Longer roman numerals come before
// shorter ones so "III" is not shadowed by "II".
var ExperienceTokens = []string{
	"Sênior", "SENIOR", "sr", "SR", "Especialista",
	"Senior", "Sr", "sênior", "SÊNIOR", "senior", "IIII", "III",
	"PL", "PLENO", "Pl", "pl", "Pleno", "pleno", "II",
	"Junior", "Jr", "JUNIOR", "JÚNIOR", "júnior", "JR", "Júnior", "I",
}

// Synonym sets for canonicalizing a matched experience token. Matching is by
// exact value, case and accentuation included.
var (
	SeniorSynonyms = []string{
		"Sênior", "SENIOR", "sr", "SR", "Especialista",
		"Senior", "Sr", "sênior", "SÊNIOR", "senior", "IIII", "III",
	}
	PlenoSynonyms = []string{
		"PL", "PLENO", "Pl", "pl", "Pleno", "pleno", "II",
	}
	JuniorSynonyms = []string{
		"Junior", "Jr", "JUNIOR", "JÚNIOR", "júnior", "JR", "Júnior", "I",
	}
)

// CanonicalTitles is the professional-title table, most specific first.
var CanonicalTitles = []string{
	"Engenheiro de Dados",
	"Engenheira de Dados",
	"Cientista de Dados",
	"Analista de Dados",
	"Analista de Business Intelligence",
	"Analista de BI",
	"Analista de Inteligência de Dados",
	"Arquiteto de Dados",
	"Engenheiro de Machine Learning",
	"Analytics Engineer",
	"Data Engineer",
	"Data Scientist",
	"Data Analyst",
	"Business Intelligence",
}

// HardSkills are tool and platform keywords extracted from descriptions.
var HardSkills = []string{
	"Python", "SQL", "Java", "Scala", "Spark", "Hadoop", "Airflow",
	"Kafka", "AWS", "Azure", "GCP", "Databricks", "Snowflake",
	"BigQuery", "Redshift", "Power BI", "Tableau", "Looker", "Qlik",
	"Excel", "dbt", "Docker", "Kubernetes", "Terraform", "Git",
	"NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Oracle", "SAS",
	"Pandas", "PySpark",
}

// Atividades are complementary activity keywords (the "complemento" column).
var Atividades = []string{
	"ETL", "ELT", "Dashboards", "Relatórios", "Modelagem de Dados",
	"Data Warehouse", "Data Lake", "Pipelines", "Automação",
	"Machine Learning", "Análise Exploratória", "Governança de Dados",
	"KPIs", "Storytelling", "Web Scraping",
}

// SoftSkills are behavioral keywords.
var SoftSkills = []string{
	"Comunicação", "Trabalho em equipe", "Proatividade", "Liderança",
	"Organização", "Resolução de problemas", "Pensamento crítico",
	"Pensamento analítico", "Colaboração", "Autonomia", "Criatividade",
}

// Metodologias are work-methodology keywords.
var Metodologias = []string{
	"Scrum", "Kanban", "Ágil", "Agile", "Squad", "Lean", "SAFe", "Sprint",
}

// Graduacoes are degree and education keywords.
var Graduacoes = []string{
	"Graduação", "Ensino Superior", "Bacharelado", "Tecnólogo",
	"Pós-graduação", "Mestrado", "Doutorado", "MBA",
	"Estatística", "Ciência da Computação", "Engenharia da Computação",
	"Sistemas de Informação", "Matemática",
}

// TiposContrato are contract-type keywords.
var TiposContrato = []string{
	"CLT", "PJ", "Estágio", "Temporário", "Efetivo", "Cooperado",
	"Freelancer", "Trainee", "Aprendiz",
}
