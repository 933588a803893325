package normalizer

import "testing"

func TestExtractState(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"São Paulo, SP", "SP"},
		{"Belo Horizonte - MG", "MG"},
		{"Campinas, SP - Híbrido", "Híbrido"}, // dash branch wins over comma
		{"(Remoto)", "(Remoto)"},
		{"Brasil", "Brasil"},
		{"  Qualquer lugar  ", "Qualquer lugar"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := extractState(tt.location); got != tt.want {
			t.Errorf("extractState(%q) = %q, want %q", tt.location, got, tt.want)
		}
	}
}

func TestExtractCity(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"São Paulo, SP", "São Paulo"},
		{"Belo Horizonte - MG", "Belo Horizonte "}, // split fragment keeps its surrounding space
		{"Campinas, SP - Híbrido", "Campinas, SP "},
		{"(Remoto)", "(Remoto)"},
		{"Brasil", "Brasil"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := extractCity(tt.location); got != tt.want {
			t.Errorf("extractCity(%q) = %q, want %q", tt.location, got, tt.want)
		}
	}
}
