package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultLocale is the fallback locale used when none is configured.
const DefaultLocale = "en"

// M holds placeholder values.
type M = map[string]any

// Catalog maps locales to translated messages.
// It is immutable after New returns.
type Catalog struct {
	// Key format: "locale:namespace.key.path"
	messages      map[string]string
	missingKey    func(locale, key string)
	defaultLocale string
}

// Option configures the Catalog during construction.
type Option func(*Catalog) error

// New builds a catalog from the given options.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		messages:      make(map[string]string),
		defaultLocale: DefaultLocale,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return c, nil
}

// WithDefaultLocale sets the fallback locale.
func WithDefaultLocale(locale string) Option {
	return func(c *Catalog) error {
		if locale == "" {
			return ErrEmptyLocale
		}
		c.defaultLocale = normalizeLocale(locale)
		return nil
	}
}

// WithTranslations adds translations for a locale and namespace.
// Nested maps are flattened with dots.
func WithTranslations(locale, namespace string, translations map[string]any) Option {
	return func(c *Catalog) error {
		if locale == "" {
			return ErrEmptyLocale
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		c.add(locale, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler sets a function called when a key has no translation
// in any fallback locale.
func WithMissingKeyHandler(fn func(locale, key string)) Option {
	return func(c *Catalog) error {
		c.missingKey = fn
		return nil
	}
}

// DefaultLocale returns the fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Translate implements view.Translator.
//
// Map arguments provide {{placeholder}} values. The first int argument is
// the count: it selects the plural form (key.one, key.other, ...) and is
// available as {{count}}. Other arguments are ignored.
func (c *Catalog) Translate(locale, key string, args ...any) string {
	placeholders := M{}
	count, hasCount := 0, false
	for _, arg := range args {
		switch v := arg.(type) {
		case map[string]any:
			maps.Copy(placeholders, v)
		case int:
			if !hasCount {
				count, hasCount = v, true
			}
		}
	}

	var (
		msg string
		ok  bool
	)
	for _, loc := range c.fallbacks(locale) {
		if hasCount {
			msg, ok = c.lookupPlural(loc, key, count)
		}
		if !ok {
			msg, ok = c.messages[buildKey(loc, key)]
		}
		if ok {
			break
		}
	}

	if !ok {
		if c.missingKey != nil {
			c.missingKey(locale, key)
		}
		return key
	}

	if hasCount {
		if _, set := placeholders["count"]; !set {
			placeholders["count"] = count
		}
	}
	return ReplacePlaceholders(msg, placeholders)
}

func (c *Catalog) lookupPlural(locale, key string, n int) (string, bool) {
	for _, form := range pluralForms(locale, n) {
		if msg, ok := c.messages[buildKey(locale, key+"."+form)]; ok {
			return msg, true
		}
	}
	return "", false
}

// fallbacks returns the locale, its base language and the default locale,
// without duplicates.
func (c *Catalog) fallbacks(locale string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	for _, loc := range []string{locale, baseLanguage(locale), c.defaultLocale, baseLanguage(c.defaultLocale)} {
		if loc != "" && !slices.Contains(out, loc) {
			out = append(out, loc)
		}
	}
	return out
}

func (c *Catalog) add(locale, namespace string, translations map[string]any) {
	locale = normalizeLocale(locale)
	for key, value := range flatten(translations, namespace) {
		c.messages[buildKey(locale, key)] = value
	}
}

func buildKey(locale, key string) string {
	return locale + ":" + key
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

// baseLanguage strips the region from a locale ("en-us" -> "en").
func baseLanguage(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}

func flatten(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flatten(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
