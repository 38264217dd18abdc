// Package view renders mail templates stored in an fs.FS.
//
// A view name is resolved to a file under the view root ("views/mail" by
// default). Names containing a dot, such as "application.layouts.main", are
// resolved through path aliases instead: the first segment names the alias
// and the remaining segments form the path below it.
//
// Render wraps the view in the current layout, which receives the rendered
// view as {{.content}}. Templates may switch the layout with setLayout, and
// Render may temporarily switch the locale; both, together with the output
// stack and the clip store, are restored when Render returns, whether it
// succeeded or failed.
//
// Basic usage:
//
//	v := view.New(os.DirFS("."), view.Config{Path: "views/mail", Layout: "layout"})
//	out, err := v.Render("welcome", map[string]any{"name": "John"}, "de")
//
// Views use text/template by default (extension ".tmpl"). An alternate
// renderer, such as HTMLRenderer or the markdown renderer, replaces the
// extension and handles the files it declares.
//
// Clips capture a fragment of output for use elsewhere in the same render:
//
//	{{beginClip "footer"}}Sent to {{.email}}{{endClip}}
//	...
//	{{clip "footer"}}
//
// A View holds per-render state and is not safe for concurrent use.
package view
