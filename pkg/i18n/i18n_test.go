package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/courier/pkg/i18n"
)

func newCatalog(t *testing.T, opts ...i18n.Option) *i18n.Catalog {
	t.Helper()

	opts = append([]i18n.Option{
		i18n.WithTranslations("en", "welcome", map[string]any{
			"greeting": "Hello, {{name}}!",
			"title":    "Welcome",
			"inbox": map[string]any{
				"zero":  "No messages",
				"one":   "{{count}} message",
				"other": "{{count}} messages",
			},
		}),
		i18n.WithTranslations("uk", "welcome", map[string]any{
			"greeting": "Привіт, {{name}}!",
			"inbox": map[string]any{
				"one":   "{{count}} повідомлення",
				"few":   "{{count}} повідомлення",
				"many":  "{{count}} повідомлень",
				"other": "{{count}} повідомлення",
			},
		}),
		i18n.WithTranslations("en-GB", "welcome", map[string]any{
			"title": "Welcome, mate",
		}),
	}, opts...)

	c, err := i18n.New(opts...)
	require.NoError(t, err)
	return c
}

func TestCatalog_Translate(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)

	tests := []struct {
		name   string
		locale string
		key    string
		args   []any
		want   string
	}{
		{name: "placeholders", locale: "en", key: "welcome.greeting", args: []any{map[string]any{"name": "John"}}, want: "Hello, John!"},
		{name: "other locale", locale: "uk", key: "welcome.greeting", args: []any{map[string]any{"name": "Іван"}}, want: "Привіт, Іван!"},
		{name: "region specific", locale: "en_GB", key: "welcome.title", want: "Welcome, mate"},
		{name: "region falls back to base", locale: "en_US", key: "welcome.title", want: "Welcome"},
		{name: "falls back to default", locale: "uk", key: "welcome.title", want: "Welcome"},
		{name: "unknown locale", locale: "fr", key: "welcome.title", want: "Welcome"},
		{name: "empty locale", locale: "", key: "welcome.title", want: "Welcome"},
		{name: "missing key", locale: "en", key: "welcome.nope", want: "welcome.nope"},
		{name: "plural zero", locale: "en", key: "welcome.inbox", args: []any{0}, want: "No messages"},
		{name: "plural one", locale: "en", key: "welcome.inbox", args: []any{1}, want: "1 message"},
		{name: "plural other", locale: "en", key: "welcome.inbox", args: []any{5}, want: "5 messages"},
		{name: "slavic few", locale: "uk", key: "welcome.inbox", args: []any{3}, want: "3 повідомлення"},
		{name: "slavic many", locale: "uk", key: "welcome.inbox", args: []any{5}, want: "5 повідомлень"},
		{name: "zero uses the cldr form", locale: "uk", key: "welcome.inbox", args: []any{0}, want: "0 повідомлень"},
		{name: "unknown args ignored", locale: "en", key: "welcome.title", args: []any{"x", 1.5}, want: "Welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Translate(tt.locale, tt.key, tt.args...))
		})
	}
}

func TestCatalog_MissingKeyHandler(t *testing.T) {
	t.Parallel()

	var missing []string
	c := newCatalog(t, i18n.WithMissingKeyHandler(func(locale, key string) {
		missing = append(missing, locale+":"+key)
	}))

	require.Equal(t, "welcome.typo", c.Translate("fr", "welcome.typo"))
	require.Equal(t, "Welcome", c.Translate("fr", "welcome.title"))
	require.Equal(t, []string{"fr:welcome.typo"}, missing)
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := i18n.New(i18n.WithDefaultLocale(""))
	require.ErrorIs(t, err, i18n.ErrEmptyLocale)

	_, err = i18n.New(i18n.WithTranslations("", "ns", nil))
	require.ErrorIs(t, err, i18n.ErrEmptyLocale)

	_, err = i18n.New(i18n.WithTranslations("en", "", nil))
	require.ErrorIs(t, err, i18n.ErrEmptyNamespace)
}

func TestWithDefaultLocale(t *testing.T) {
	t.Parallel()

	c := newCatalog(t, i18n.WithDefaultLocale("uk"))
	require.Equal(t, "uk", c.DefaultLocale())
	require.Equal(t, "Привіт, John!", c.Translate("fr", "welcome.greeting", map[string]any{"name": "John"}))
}

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en/mail.yaml":   {Data: []byte("subject: Your order\nbody:\n  intro: \"Hi {{name}}\"\n")},
		"de-AT/mail.yml": {Data: []byte("subject: Ihre Bestellung\n")},
		"uk/mail.json":   {Data: []byte(`{"subject": "Ваше замовлення"}`)},
		"en/README.md":   {Data: []byte("ignored")},
	}

	c, err := i18n.New(i18n.WithYAMLDir(fsys))
	require.NoError(t, err)

	assert.Equal(t, "Your order", c.Translate("en", "mail.subject"))
	assert.Equal(t, "Hi Ann", c.Translate("en", "mail.body.intro", map[string]any{"name": "Ann"}))
	assert.Equal(t, "Ihre Bestellung", c.Translate("de_AT", "mail.subject"))
	assert.Equal(t, "Ваше замовлення", c.Translate("uk", "mail.subject"))
}

func TestWithYAMLDir_Errors(t *testing.T) {
	t.Parallel()

	t.Run("file outside locale dir", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{"mail.yaml": {Data: []byte("a: b")}}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{"en/mail.yaml": {Data: []byte("a: [b")}}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello, John! {{missing}}", i18n.ReplacePlaceholders("Hello, {{name}}! {{missing}}", i18n.M{"name": "John"}))
	assert.Equal(t, "no placeholders", i18n.ReplacePlaceholders("no placeholders", i18n.M{"name": "John"}))
	assert.Equal(t, "{{name}}", i18n.ReplacePlaceholders("{{name}}", nil))
}
