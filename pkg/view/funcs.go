package view

import (
	"fmt"
	"maps"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Funcs returns the template funcs bound to this view:
//
//	render "name" data   renders another view in place
//	beginClip "name"     starts a clip; pass true as second arg to echo it
//	endClip              ends the innermost clip
//	clip "name"          returns a recorded clip
//	setLayout "name"     changes the layout of the enclosing Render
//	layout               returns the current layout
//	locale               returns the current locale
//	t "key" args...      translates a key for the current locale
//	number n             formats a number for the current locale
func (v *View) Funcs() template.FuncMap {
	funcs := maps.Clone(v.extraFuncs)

	funcs["render"] = func(name string, data ...map[string]any) (string, error) {
		var d map[string]any
		if len(data) > 0 {
			d = data[0]
		}
		return v.RenderPartial(name, d)
	}
	funcs["beginClip"] = func(name string, echo ...bool) string {
		v.BeginClip(name, len(echo) > 0 && echo[0])
		return ""
	}
	funcs["endClip"] = func() (string, error) {
		return "", v.EndClip()
	}
	funcs["clip"] = v.Clip
	funcs["setLayout"] = func(name string) string {
		v.SetLayout(name)
		return ""
	}
	funcs["layout"] = v.Layout
	funcs["locale"] = v.Locale
	funcs["t"] = v.translate
	funcs["number"] = v.formatNumber

	return funcs
}

func (v *View) translate(key string, args ...any) string {
	if v.translator == nil {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprintf(key, args...)
	}
	return v.translator.Translate(v.locale, key, args...)
}

func (v *View) formatNumber(n any) string {
	tag, err := language.Parse(strings.ReplaceAll(v.locale, "_", "-"))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("%v", n)
}
