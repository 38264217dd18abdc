// Package i18n provides the message catalog behind the t template func of
// mail views.
//
// A Catalog is built once and is safe for concurrent use. It implements
// view.Translator:
//
//	catalog, err := i18n.New(
//		i18n.WithDefaultLocale("en"),
//		i18n.WithYAMLDir(os.DirFS("translations")),
//	)
//
//	v := view.New(fsys, cfg, view.WithTranslator(catalog))
//
// # Files
//
// Translations live in {locale}/{namespace}.yaml (or .yml, .json). Keys are
// addressed as namespace.key, nested maps are flattened with dots:
//
//	# en/welcome.yaml
//	greeting: "Hello, {{name}}!"
//	inbox:
//	  one: "You have {{count}} message"
//	  other: "You have {{count}} messages"
//
// # Templates
//
//	{{t "welcome.greeting" .}}          placeholders come from map arguments
//	{{t "welcome.inbox" .count}}        an int argument selects the plural form
//
// Locales are matched case-insensitively with "_" and "-" treated alike, so
// the view locale "en_US" finds files under en-us/. Lookups fall back to the
// base language ("en") and then to the default locale. A key with no
// translation is returned as is.
package i18n
