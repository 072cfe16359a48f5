// Package i18n resolves user-visible messages in the caller's language.
package i18n

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Bundle struct {
	tags    []language.Tag
	matcher language.Matcher
	def     string
}

// New builds a bundle over the built-in catalogs. def is used when nothing
// in Accept-Language matches; unknown values fall back to English.
func New(def string) *Bundle {
	tags := []language.Tag{language.English, language.French, language.Spanish}
	b := &Bundle{tags: tags, matcher: language.NewMatcher(tags), def: "en"}
	if _, ok := catalogs[base(def)]; ok {
		b.def = base(def)
	}
	// the default language must be the matcher's first choice
	for i, t := range tags {
		if base(t.String()) == b.def {
			tags[0], tags[i] = tags[i], tags[0]
			b.matcher = language.NewMatcher(tags)
			break
		}
	}
	return b
}

// Match picks the best catalog for an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) Localizer {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Localizer{lang: b.def}
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return Localizer{lang: b.def}
	}
	return Localizer{lang: base(b.tags[idx].String())}
}

func base(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return tag
}

// Localizer is a resolved language. The zero value speaks English.
type Localizer struct{ lang string }

func For(lang string) Localizer { return Localizer{lang: base(lang)} }

func (l Localizer) Lang() string {
	if _, ok := catalogs[l.lang]; !ok {
		return "en"
	}
	return l.lang
}

// Lookup reports whether key has a translation in this language or English.
func (l Localizer) Lookup(key string) (string, bool) {
	if s, ok := catalogs[l.Lang()][key]; ok {
		return s, true
	}
	s, ok := catalogs["en"][key]
	return s, ok
}

// T returns the message for key, formatted with args. Missing keys come back
// verbatim so gaps are visible rather than blank.
func (l Localizer) T(key string, args ...any) string {
	s, ok := l.Lookup(key)
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

type ctxKey struct{}

func WithLocalizer(ctx context.Context, l Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) Localizer {
	l, _ := ctx.Value(ctxKey{}).(Localizer)
	return l
}
