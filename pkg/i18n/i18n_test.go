package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		fallback string
		want     language.Tag
	}{
		{name: "header wins", header: "es-MX,es;q=0.9,en;q=0.5", fallback: "fr", want: language.Spanish},
		{name: "fallback when header empty", fallback: "de", want: language.German},
		{name: "english when nothing matches", header: "ja", fallback: "zz", want: language.English},
		{name: "regional french", header: "fr-CA", want: language.French},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.header, tc.fallback); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFromLabel(t *testing.T) {
	if got := From(language.English); got != "From" {
		t.Fatalf("unexpected english label %q", got)
	}
	if got := From(language.Spanish); got != "Desde" {
		t.Fatalf("unexpected spanish label %q", got)
	}
	if got := From(language.Japanese); got != "From" {
		t.Fatalf("unsupported language should fall back to english, got %q", got)
	}
}
