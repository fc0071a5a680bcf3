package detector

import "testing"

func TestCode(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		text     string
		fallback string
		want     string
	}{
		{
			name:     "empty falls back",
			text:     "",
			fallback: "de",
			want:     "de",
		},
		{
			name:     "whitespace falls back",
			text:     "  \n\t",
			fallback: "en",
			want:     "en",
		},
		{
			name:     "german sentence",
			text:     "Das Lastenheft beschreibt die Anforderungen des Auftraggebers an das Projekt.",
			fallback: "en",
			want:     "de",
		},
		{
			name:     "english sentence",
			text:     "The requirements document describes what the customer expects from the project.",
			fallback: "de",
			want:     "en",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Code(tt.text, tt.fallback); got != tt.want {
				t.Errorf("Code(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
