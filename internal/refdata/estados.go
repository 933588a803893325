package refdata

import "strings"

// stateCodes maps full Brazilian state names to their two-letter codes.
// All 27 federative units.
var stateCodes = map[string]string{
	"Acre":                "AC",
	"Alagoas":             "AL",
	"Amapá":               "AP",
	"Amazonas":            "AM",
	"Bahia":               "BA",
	"Ceará":               "CE",
	"Distrito Federal":    "DF",
	"Espírito Santo":      "ES",
	"Goiás":               "GO",
	"Maranhão":            "MA",
	"Mato Grosso":         "MT",
	"Mato Grosso do Sul":  "MS",
	"Minas Gerais":        "MG",
	"Pará":                "PA",
	"Paraíba":             "PB",
	"Paraná":              "PR",
	"Pernambuco":          "PE",
	"Piauí":               "PI",
	"Rio de Janeiro":      "RJ",
	"Rio Grande do Norte": "RN",
	"Rio Grande do Sul":   "RS",
	"Rondônia":            "RO",
	"Roraima":             "RR",
	"Santa Catarina":      "SC",
	"São Paulo":           "SP",
	"Sergipe":             "SE",
	"Tocantins":           "TO",
}

// foldedStateCodes allows lookups on values the backfill pass has upper-cased.
var foldedStateCodes = func() map[string]string {
	m := make(map[string]string, len(stateCodes))
	for name, code := range stateCodes {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// StateCode returns the two-letter code for a full state name. The lookup is
// case-insensitive; anything that is not a full state name reports ok=false.
func StateCode(name string) (code string, ok bool) {
	code, ok = foldedStateCodes[strings.ToLower(name)]
	return code, ok
}

// StateCount reports the number of entries in the state table.
func StateCount() int {
	return len(stateCodes)
}
