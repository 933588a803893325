package normalizer

import (
	"regexp"

	"github.com/projeto-datajobs/go-etl/internal/refdata"
)

// wordPattern is a reference token with its whole-word matcher.
type wordPattern struct {
	token string
	re    *regexp.Regexp
}

var experiencePatterns = compileWordPatterns(refdata.ExperienceTokens)

func compileWordPatterns(tokens []string) []wordPattern {
	out := make([]wordPattern, 0, len(tokens))
	for _, t := range tokens {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
		out = append(out, wordPattern{token: t, re: re})
	}
	return out
}

// firstExperienceToken scans description+title for the first experience
// token, in table order, that matches as a whole word.
func firstExperienceToken(combined string) string {
	for _, p := range experiencePatterns {
		if p.re.MatchString(combined) {
			return p.token
		}
	}
	return NaoInformado
}

var (
	seniorSet = toSet(refdata.SeniorSynonyms)
	plenoSet  = toSet(refdata.PlenoSynonyms)
	juniorSet = toSet(refdata.JuniorSynonyms)
)

func toSet(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// canonicalExperience maps a matched token onto one of the three seniority
// levels. Synonyms match by exact value; anything outside the synonym sets,
// including the not-informed placeholder, passes through unchanged.
func canonicalExperience(token string) string {
	switch {
	case seniorSet[token]:
		return "Sênior"
	case plenoSet[token]:
		return "Pleno"
	case juniorSet[token]:
		return "Júnior"
	}
	return token
}
