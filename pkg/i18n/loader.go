package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads {locale}/{namespace}.yaml, .yml and .json files from fsys.
// The fs.FS root must contain the locale directories directly.
//
//	en/welcome.yaml
//	uk/welcome.yaml
//	de-at/welcome.json
func WithYAMLDir(fsys fs.FS) Option {
	return func(c *Catalog) error {
		return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			var unmarshal func([]byte, any) error
			switch strings.ToLower(path.Ext(filePath)) {
			case ".yaml", ".yml":
				unmarshal = yaml.Unmarshal
			case ".json":
				unmarshal = json.Unmarshal
			default:
				return nil
			}

			dir := path.Dir(filePath)
			if dir == "." {
				return fmt.Errorf("%w: file %q must be inside a locale directory", ErrInvalidFile, filePath)
			}

			data, err := fs.ReadFile(fsys, filePath)
			if err != nil {
				return fmt.Errorf("reading %q: %w", filePath, err)
			}

			var translations map[string]any
			if err := unmarshal(data, &translations); err != nil {
				return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
			}

			namespace := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
			c.add(path.Base(dir), namespace, translations)

			return nil
		})
	}
}
