package view

import (
	"fmt"
	"io"
	"maps"
	"path"
	"text/template"
)

// ContentKey is the data key under which a layout receives the rendered view.
const ContentKey = "content"

// Render renders the named view and wraps it in the current layout.
// A non-empty locale replaces the current locale for the duration of the call.
//
// The layout, locale, output stack and clip store are restored to their
// state before the call on every return path. Errors from the view or
// layout are returned unchanged.
func (v *View) Render(name string, data map[string]any, locale string) (content string, err error) {
	layout, prevLocale := v.layout, v.locale
	depth, clips := len(v.out), maps.Clone(v.clips)
	defer func() {
		v.unwind(depth)
		v.layout = layout
		v.locale = prevLocale
		v.clips = clips
	}()

	if locale != "" {
		v.locale = locale
	}

	content, err = v.RenderPartial(name, data)
	if err != nil {
		return "", err
	}

	if v.layout != "" {
		layoutData := maps.Clone(data)
		if layoutData == nil {
			layoutData = make(map[string]any, 1)
		}
		layoutData[ContentKey] = content

		content, err = v.RenderPartial(v.layout, layoutData)
		if err != nil {
			return "", err
		}
	}

	return content, nil
}

// RenderPartial renders the named view without a layout.
func (v *View) RenderPartial(name string, data map[string]any) (string, error) {
	file, ok := v.ViewFile(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrViewNotFound, name)
	}
	return v.RenderFile(file, data)
}

// RenderFile renders a view file. Files with the alternate renderer's
// extension go to that renderer; everything else is executed as a
// text/template.
func (v *View) RenderFile(file string, data map[string]any) (string, error) {
	if v.renderer != nil && v.renderer.Extension() == path.Ext(file) {
		return v.renderer.RenderFile(v, file, data)
	}

	loaded, err := v.Load("text", file, func(src []byte) (any, error) {
		return template.New(path.Base(file)).Funcs(v.Funcs()).Parse(string(src))
	})
	if err != nil {
		return "", err
	}
	tmpl, ok := loaded.(*template.Template)
	if !ok {
		return "", mismatch(file, loaded)
	}

	return v.Capture(func(w io.Writer) error {
		return tmpl.Execute(w, data)
	})
}
