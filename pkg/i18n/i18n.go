// Package i18n resolves the shopper language and translates storefront labels.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// LabelFrom prefixes prices that vary across variants or quantities.
const LabelFrom = "From"

var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Dutch,
	language.Italian,
	language.Portuguese,
}

var (
	matcher = language.NewMatcher(supported)
	labels  = buildCatalog()
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	translations := map[language.Tag]string{
		language.English:    "From",
		language.Spanish:    "Desde",
		language.French:     "À partir de",
		language.German:     "Ab",
		language.Dutch:      "Vanaf",
		language.Italian:    "A partire da",
		language.Portuguese: "A partir de",
	}
	for tag, text := range translations {
		_ = b.SetString(tag, LabelFrom, text)
	}
	return b
}

// Resolve picks the best supported language for an Accept-Language header,
// falling back to fallback and then English.
func Resolve(acceptLanguage, fallback string) language.Tag {
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			if tag, _, conf := matcher.Match(tags...); conf != language.No {
				return base(tag)
			}
		}
	}
	if fallback != "" {
		if tag, err := language.Parse(fallback); err == nil {
			if matched, _, conf := matcher.Match(tag); conf != language.No {
				return base(matched)
			}
		}
	}
	return language.English
}

// Translate returns key in the language of tag.
func Translate(tag language.Tag, key string) string {
	return message.NewPrinter(tag, message.Catalog(labels)).Sprintf(key)
}

// From returns the localized "From" label.
func From(tag language.Tag) string {
	return Translate(tag, LabelFrom)
}

// base strips the -u-rg extension the matcher attaches to matched tags.
func base(tag language.Tag) language.Tag {
	b, _ := tag.Base()
	for _, s := range supported {
		if sb, _ := s.Base(); sb == b {
			return s
		}
	}
	return tag
}
