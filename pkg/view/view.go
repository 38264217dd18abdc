package view

import (
	"bytes"
	"io/fs"
	"maps"
	"path"
	"text/template"

	"github.com/google/uuid"

	"github.com/dmitrymomot/courier/pkg/cache"
)

// DefaultExtension is the extension of views handled by the built-in
// text/template renderer.
const DefaultExtension = ".tmpl"

// ApplicationAlias is the alias registered for Config.BasePath.
const ApplicationAlias = "application"

// Renderer renders view files of one extension in place of the built-in
// text/template renderer.
type Renderer interface {
	// Extension returns the handled file extension, including the dot.
	Extension() string

	// RenderFile renders file with data. Implementations write through
	// View.Capture so that clips work inside their templates.
	RenderFile(v *View, file string, data map[string]any) (string, error)
}

// Translator translates a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(locale, key string, args ...any) string {
	return f(locale, key, args...)
}

// Option configures a View.
type Option func(*View)

// WithRenderer sets the alternate renderer.
func WithRenderer(r Renderer) Option {
	return func(v *View) {
		v.renderer = r
	}
}

// WithTranslator sets the translator behind the t template func.
func WithTranslator(t Translator) Option {
	return func(v *View) {
		v.translator = t
	}
}

// WithAlias registers a path alias for dotted view names.
func WithAlias(alias, dir string) Option {
	return func(v *View) {
		v.aliases[alias] = path.Clean(dir)
	}
}

// WithFuncs adds template funcs. They cannot replace the built-in ones.
func WithFuncs(funcs template.FuncMap) Option {
	return func(v *View) {
		maps.Copy(v.extraFuncs, funcs)
	}
}

// View resolves and renders mail templates.
type View struct {
	fsys       fs.FS
	renderer   Renderer
	translator Translator
	aliases    map[string]string
	extraFuncs template.FuncMap
	clips      map[string]string
	templates  *cache.Memory[any]
	id         string
	layout     string
	locale     string
	root       string
	out        []*bytes.Buffer
	open       []clipFrame
}

// New creates a View reading templates from fsys.
// Empty Config fields fall back to DefaultConfig.
func New(fsys fs.FS, cfg Config, opts ...Option) *View {
	def := DefaultConfig()
	if cfg.BasePath == "" {
		cfg.BasePath = def.BasePath
	}
	if cfg.Path == "" {
		cfg.Path = def.Path
	}
	if cfg.Locale == "" {
		cfg.Locale = def.Locale
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}

	v := &View{
		fsys:       fsys,
		aliases:    map[string]string{ApplicationAlias: path.Clean(cfg.BasePath)},
		extraFuncs: template.FuncMap{},
		clips:      map[string]string{},
		templates:  cache.NewMemory[any](cache.WithCleanupInterval(0), cache.WithMaxEntries(cfg.CacheSize)),
		id:         uuid.NewString(),
		layout:     cfg.Layout,
		locale:     cfg.Locale,
		root:       path.Join(cfg.BasePath, cfg.Path),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FS returns the file system views are read from.
func (v *View) FS() fs.FS { return v.fsys }

// Renderer returns the alternate renderer, or nil.
func (v *View) Renderer() Renderer { return v.renderer }

// SetRenderer replaces the alternate renderer. Nil restores the built-in one.
func (v *View) SetRenderer(r Renderer) { v.renderer = r }

// ViewPath returns the root directory of view files.
func (v *View) ViewPath() string { return v.root }

// SetViewPath sets the root directory of view files.
func (v *View) SetViewPath(dir string) { v.root = path.Clean(dir) }

// Layout returns the layout applied by Render. Empty means none.
func (v *View) Layout() string { return v.layout }

// SetLayout sets the layout applied by Render. Called from inside a
// template, the change lasts until the enclosing Render returns.
func (v *View) SetLayout(name string) { v.layout = name }

// Locale returns the current locale.
func (v *View) Locale() string { return v.locale }

// SetLocale sets the current locale.
func (v *View) SetLocale(locale string) { v.locale = locale }
