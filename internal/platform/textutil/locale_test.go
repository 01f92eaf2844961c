package textutil

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

func TestMatchLocale(t *testing.T) {
	cases := []struct {
		raw  string
		want language.Tag
	}{
		{"", language.Arabic},
		{"ar", language.Arabic},
		{"ar-TN", language.Arabic},
		{"fr", language.French},
		{"fr-FR,fr;q=0.9,en;q=0.5", language.French},
		{"en-US", language.Arabic},
		{"garbage;;;", language.Arabic},
	}
	for _, tc := range cases {
		if got := MatchLocale(tc.raw); got != tc.want {
			t.Fatalf("MatchLocale(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestLocalize(t *testing.T) {
	name := domain.BilingualText{Ar: "قميص", Fr: "Chemise"}
	if got := Localize(name, language.Arabic); got != name.Ar {
		t.Fatalf("arabic = %q", got)
	}
	if got := Localize(name, language.French); got != "Chemise" {
		t.Fatalf("french = %q", got)
	}
	onlyFr := domain.BilingualText{Fr: "Chemise"}
	if got := Localize(onlyFr, language.Arabic); got != "Chemise" {
		t.Fatalf("fallback = %q", got)
	}
}

func TestDisplayAmount(t *testing.T) {
	amount := domain.Millimes(157_000)
	if got := DisplayAmount(amount, language.French); got != "157.000 DT" {
		t.Fatalf("french amount = %q", got)
	}
	if got := DisplayAmount(amount, language.Arabic); got != "157.000 د.ت" {
		t.Fatalf("arabic amount = %q", got)
	}
}
