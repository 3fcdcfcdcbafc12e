// Package i18n resolves display strings for the two supported languages and
// formats money, dates and times per locale.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"

	Default = English
)

var (
	tagEnglish = language.AmericanEnglish
	tagArabic  = language.MustParse("ar-EG-u-nu-arab")
)

// ParseLanguage accepts "en"/"ar" (case-insensitive, surrounding space ignored).
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, true
	case Arabic:
		return Arabic, true
	default:
		return "", false
	}
}

// OrDefault returns l when supported, otherwise English.
func (l Language) OrDefault() Language {
	if parsed, ok := ParseLanguage(string(l)); ok {
		return parsed
	}
	return Default
}

func (l Language) IsRTL() bool {
	return l.OrDefault() == Arabic
}

// Dir is the document write direction, "rtl" or "ltr".
func (l Language) Dir() string {
	if l.IsRTL() {
		return "rtl"
	}
	return "ltr"
}

// Tag is the locale used for number and date formatting.
func (l Language) Tag() language.Tag {
	if l.IsRTL() {
		return tagArabic
	}
	return tagEnglish
}

type contextKey struct{}

func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, contextKey{}, lang.OrDefault())
}

// FromContext returns the request language, English when none was set.
func FromContext(ctx context.Context) Language {
	if lang, ok := ctx.Value(contextKey{}).(Language); ok {
		return lang
	}
	return Default
}
