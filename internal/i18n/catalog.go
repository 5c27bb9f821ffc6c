package i18n

import "fmt"

// Catalog renders messages in one language. It is immutable and safe for
// concurrent use.
type Catalog struct {
	lang     Lang
	messages map[string]string
}

// New returns the catalog for lang. Unknown languages get DefaultLang.
func New(lang Lang) *Catalog {
	messages, ok := translations[lang]
	if !ok {
		lang = DefaultLang
		messages = translations[DefaultLang]
	}
	return &Catalog{lang: lang, messages: messages}
}

// Lang returns the catalog language.
func (c *Catalog) Lang() Lang {
	return c.lang
}

// T returns the message for key formatted with args. A key without a
// message returns the key unchanged.
func (c *Catalog) T(key string, args ...any) string {
	msg, ok := c.messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Has reports whether key has a message in this catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Keys returns the number of messages in the catalog.
func (c *Catalog) Keys() int {
	return len(c.messages)
}
