package view_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/courier/pkg/view"
)

func htmlFS() fstest.MapFS {
	return fstest.MapFS{
		"views/mail/welcome.html": {Data: []byte(`<p>Hello {{.name}}</p>{{render "footer" .}}`)},
		"views/mail/footer.html":  {Data: []byte(`<small>{{.name}}</small>`)},
		"views/mail/layout.html":  {Data: []byte(`<html><body>{{.content}}</body></html>`)},
		"views/mail/plain.tmpl":   {Data: []byte(`Name = {{.name}}`)},
		"views/mail/clip.html": {Data: []byte(`{{beginClip "head"}}<title>{{.name}}</title>{{endClip}}` +
			`{{clip "head"}}<b>x</b>`)},
	}
}

func TestHTMLRenderer(t *testing.T) {
	t.Parallel()

	v := view.New(htmlFS(), view.Config{Layout: "layout"}, view.WithRenderer(view.NewHTMLRenderer()))

	file, ok := v.ViewFile("welcome")
	require.True(t, ok)
	require.Equal(t, "views/mail/welcome.html", file)

	// Views without the renderer extension do not resolve.
	_, ok = v.ViewFile("plain")
	require.False(t, ok)

	content, err := v.Render("welcome", map[string]any{"name": "<Tom>"}, "")
	require.NoError(t, err)
	require.Equal(t,
		"<html><body><p>Hello &lt;Tom&gt;</p><small>&lt;Tom&gt;</small></body></html>",
		content,
	)
}

func TestHTMLRenderer_Clips(t *testing.T) {
	t.Parallel()

	v := view.New(htmlFS(), view.Config{}, view.WithRenderer(view.NewHTMLRenderer()))

	content, err := v.Render("clip", map[string]any{"name": "A&B"}, "")
	require.NoError(t, err)
	require.Equal(t, "<title>A&amp;B</title><b>x</b>", content)
}

func TestView_RenderFile_DispatchesByExtension(t *testing.T) {
	t.Parallel()

	v := view.New(htmlFS(), view.Config{}, view.WithRenderer(view.NewHTMLRenderer()))

	// A .tmpl file goes to the built-in renderer even with an alternate one set.
	content, err := v.RenderFile("views/mail/plain.tmpl", map[string]any{"name": "<Tom>"})
	require.NoError(t, err)
	require.Equal(t, "Name = <Tom>", content)

	content, err = v.RenderFile("views/mail/footer.html", map[string]any{"name": "<Tom>"})
	require.NoError(t, err)
	require.True(t, strings.Contains(content, "&lt;Tom&gt;"))
}

type upperRenderer struct {
	calls int
}

func (*upperRenderer) Extension() string { return ".txt" }

func (r *upperRenderer) RenderFile(v *view.View, file string, data map[string]any) (string, error) {
	r.calls++
	loaded, err := v.Load("upper", file, func(src []byte) (any, error) {
		return strings.ToUpper(string(src)), nil
	})
	if err != nil {
		return "", err
	}
	return loaded.(string), nil
}

func TestView_AlternateRenderer(t *testing.T) {
	t.Parallel()

	r := &upperRenderer{}
	v := view.New(fstest.MapFS{
		"views/mail/note.txt": {Data: []byte("shout")},
	}, view.Config{}, view.WithRenderer(r))

	require.Same(t, r, v.Renderer())

	for range 2 {
		content, err := v.Render("note", nil, "")
		require.NoError(t, err)
		require.Equal(t, "SHOUT", content)
	}
	require.Equal(t, 2, r.calls)

	v.SetRenderer(nil)
	_, err := v.Render("note", nil, "")
	require.ErrorIs(t, err, view.ErrViewNotFound)
}

func TestView_Load(t *testing.T) {
	t.Parallel()

	v := view.New(fstest.MapFS{"a.tmpl": {Data: []byte("a")}}, view.Config{})

	parses := 0
	parse := func(src []byte) (any, error) {
		parses++
		return string(src), nil
	}

	for range 3 {
		got, err := v.Load("raw", "a.tmpl", parse)
		require.NoError(t, err)
		require.Equal(t, "a", got)
	}
	require.Equal(t, 1, parses)

	v.Reset()
	_, err := v.Load("raw", "a.tmpl", parse)
	require.NoError(t, err)
	require.Equal(t, 2, parses)

	_, err = v.Load("raw", "missing.tmpl", parse)
	require.ErrorIs(t, err, view.ErrTemplateParse)
}

func TestView_RendererSwitchKeepsTemplatesApart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		first view.Renderer
		then  view.Renderer
		want  []string
	}{
		{
			name:  "text then html",
			first: nil,
			then:  view.NewHTMLRenderer(),
			want:  []string{"<small><Tom></small>", "<small>&lt;Tom&gt;</small>"},
		},
		{
			name:  "html then text",
			first: view.NewHTMLRenderer(),
			then:  nil,
			want:  []string{"<small>&lt;Tom&gt;</small>", "<small><Tom></small>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := view.New(htmlFS(), view.Config{}, view.WithRenderer(tt.first))
			data := map[string]any{"name": "<Tom>"}

			content, err := v.RenderFile("views/mail/footer.html", data)
			require.NoError(t, err)
			require.Equal(t, tt.want[0], content)

			v.SetRenderer(tt.then)
			require.NotPanics(t, func() {
				content, err = v.RenderFile("views/mail/footer.html", data)
			})
			require.NoError(t, err)
			require.Equal(t, tt.want[1], content)
			require.Equal(t, 2, v.CachedTemplates())
		})
	}
}

func TestView_LoadKindMismatch(t *testing.T) {
	t.Parallel()

	v := view.New(htmlFS(), view.Config{})

	_, err := v.Load("text", "views/mail/plain.tmpl", func([]byte) (any, error) {
		return "not a template", nil
	})
	require.NoError(t, err)

	_, err = v.RenderFile("views/mail/plain.tmpl", nil)
	require.ErrorIs(t, err, view.ErrTemplateParse)
}

func TestView_LoadCacheIsBounded(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{}
	for _, name := range []string{"a", "b", "c", "d"} {
		fsys[name+".tmpl"] = &fstest.MapFile{Data: []byte(name)}
	}
	v := view.New(fsys, view.Config{CacheSize: 2})

	parse := func(src []byte) (any, error) { return string(src), nil }
	for _, name := range []string{"a", "b", "c", "d"} {
		got, err := v.Load("raw", name+".tmpl", parse)
		require.NoError(t, err)
		require.Equal(t, name, got)
	}
	require.Equal(t, 2, v.CachedTemplates())
}

func TestView_LoadKeysPerView(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"a.tmpl": {Data: []byte("a")}}
	first := view.New(fsys, view.Config{})
	second := view.New(fsys, view.Config{})

	got, err := first.Load("raw", "a.tmpl", func([]byte) (any, error) { return "first", nil })
	require.NoError(t, err)
	require.Equal(t, "first", got)

	got, err = second.Load("raw", "a.tmpl", func([]byte) (any, error) { return "second", nil })
	require.NoError(t, err)
	require.Equal(t, "second", got)
}
