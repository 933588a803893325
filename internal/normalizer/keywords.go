package normalizer

import (
	"regexp"
	"strings"

	"github.com/projeto-datajobs/go-etl/internal/refdata"
)

// keywordTable is a reference table compiled for description scanning. Each
// entry matches as a case-insensitive regular expression anywhere in the
// text, not word-bounded, unlike the experience scan.
type keywordTable struct {
	entries  []string
	patterns []*regexp.Regexp
}

var (
	hardSkillTable   = newKeywordTable(refdata.HardSkills)
	atividadeTable   = newKeywordTable(refdata.Atividades)
	softSkillTable   = newKeywordTable(refdata.SoftSkills)
	metodologiaTable = newKeywordTable(refdata.Metodologias)
	graduacaoTable   = newKeywordTable(refdata.Graduacoes)
	contratoTable    = newKeywordTable(refdata.TiposContrato)
)

func newKeywordTable(entries []string) *keywordTable {
	t := &keywordTable{entries: entries}
	for _, e := range entries {
		t.patterns = append(t.patterns, regexp.MustCompile(`(?i)`+e))
	}
	return t
}

// extract collects every entry found in the text, in table order, joined by
// commas. No match yields the empty string.
func (t *keywordTable) extract(text string) string {
	var found []string
	for i, p := range t.patterns {
		if p.MatchString(text) {
			found = append(found, t.entries[i])
		}
	}
	return strings.Join(found, ",")
}
