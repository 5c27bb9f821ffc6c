package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported report language.
type Lang string

// Supported languages.
const (
	LangEN   Lang = "en"
	LangZhTW Lang = "zh-TW"
	LangZhCN Lang = "zh-CN"
)

// DefaultLang is used when no language is configured or matched.
const DefaultLang = LangEN

// ErrUnsupportedLanguage is returned by Parse for unknown languages.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// supported lists the languages in matcher order; the first is the fallback.
var supported = []Lang{LangEN, LangZhTW, LangZhCN}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse(string(LangZhTW)),
	language.MustParse(string(LangZhCN)),
})

// Supported returns every supported language.
func Supported() []Lang {
	out := make([]Lang, len(supported))
	copy(out, supported)
	return out
}

// Parse returns the language named exactly by s, ignoring case.
func Parse(s string) (Lang, error) {
	for _, l := range supported {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: en, zh-TW, zh-CN)", ErrUnsupportedLanguage, s)
}

// Match returns the supported language closest to any of the given BCP 47
// tags, or DefaultLang when none is close enough.
func Match(tags ...string) Lang {
	if len(tags) == 0 {
		return DefaultLang
	}
	_, index := language.MatchStrings(matcher, tags...)
	if index < 0 || index >= len(supported) {
		return DefaultLang
	}
	return supported[index]
}

// Suffix returns the file name suffix for reports in this language:
// nothing for the default language, ".<lang>" otherwise.
func (l Lang) Suffix() string {
	if l == DefaultLang || l == "" {
		return ""
	}
	return "." + string(l)
}

// Tag returns the x/text language tag of l.
func (l Lang) Tag() language.Tag {
	tag, err := language.Parse(string(l))
	if err != nil {
		return language.English
	}
	return tag
}
