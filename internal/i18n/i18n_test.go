package i18n_test

import (
	"context"
	"testing"

	"hotelos_gateway/internal/i18n"
)

func TestMatch(t *testing.T) {
	b := i18n.New("en")
	cases := map[string]string{
		"":                        "en",
		"fr-CA,fr;q=0.9,en;q=0.8": "fr",
		"es-MX":                   "es",
		"de-DE":                   "en",
		"de, es;q=0.5":            "es",
		"not a header;;":          "en",
	}
	for header, want := range cases {
		if got := b.Match(header).Lang(); got != want {
			t.Errorf("Match(%q) = %s, want %s", header, got, want)
		}
	}
}

func TestDefaultLanguage(t *testing.T) {
	if got := i18n.New("es").Match("de").Lang(); got != "es" {
		t.Fatalf("expected default es, got %s", got)
	}
	if got := i18n.New("xx").Match("").Lang(); got != "en" {
		t.Fatalf("unknown default must fall back to en, got %s", got)
	}
}

func TestT_FallsBackToEnglishThenKey(t *testing.T) {
	fr := i18n.For("fr")
	if got := fr.T("booking.primaryAdult"); got != "Le client principal doit être un adulte." {
		t.Fatalf("fr: %q", got)
	}
	// missing in fr, present in en
	if got := fr.T("roomTypes.executive"); got != "Executive" {
		t.Fatalf("fallback: %q", got)
	}
	if got := fr.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key: %q", got)
	}
	if got := i18n.For("en").T("reservationForm.overCapacity", 2); got != "The selected room holds at most 2 guests." {
		t.Fatalf("format: %q", got)
	}
}

func TestContext(t *testing.T) {
	if got := i18n.FromContext(context.Background()).Lang(); got != "en" {
		t.Fatalf("zero localizer: %s", got)
	}
	ctx := i18n.WithLocalizer(context.Background(), i18n.For("es"))
	if got := i18n.FromContext(ctx).Lang(); got != "es" {
		t.Fatalf("ctx localizer: %s", got)
	}
}
