package view

import (
	"io/fs"
	"path"
	"strings"
)

// ViewFile resolves a view name to a file path in the view FS.
// It reports false when the name is empty, the alias is unknown, or the
// file does not exist.
func (v *View) ViewFile(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	var file string
	if i := strings.IndexByte(name, '.'); i > 0 {
		dir, ok := v.aliases[name[:i]]
		if !ok {
			return "", false
		}
		file = path.Join(dir, strings.ReplaceAll(name[i+1:], ".", "/"))
	} else {
		file = path.Join(v.root, name)
	}
	file += v.extension()

	if !fs.ValidPath(file) {
		return "", false
	}
	if _, err := fs.Stat(v.fsys, file); err != nil {
		return "", false
	}
	return file, true
}

func (v *View) extension() string {
	if v.renderer != nil {
		return v.renderer.Extension()
	}
	return DefaultExtension
}
