package view

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/dmitrymomot/courier/pkg/cache"
)

// DefaultCacheSize bounds the parsed-template cache of a View.
const DefaultCacheSize = 256

// ParseFunc turns the source of a view file into a reusable template.
type ParseFunc func(src []byte) (any, error)

// Load returns the template parsed from file by parse, reading and parsing
// it on first use. Entries are keyed by kind and file, so renderers that
// parse the same file into different types never see each other's
// results. Concurrent loads of one entry share a single parse; failures
// are not cached.
func (v *View) Load(kind, file string, parse ParseFunc) (any, error) {
	key := v.id + "\x00" + kind + "\x00" + file
	return cache.GetOrSet(context.Background(), v.templates, key, func(context.Context) (any, time.Duration, error) {
		src, err := fs.ReadFile(v.fsys, file)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %v", ErrTemplateParse, file, err)
		}
		t, err := parse(src)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %v", ErrTemplateParse, file, err)
		}
		return t, -1, nil
	})
}

// Reset drops all parsed templates.
func (v *View) Reset() {
	_ = v.templates.Clear(context.Background())
}

// CachedTemplates returns the number of parsed templates held.
func (v *View) CachedTemplates() int {
	return v.templates.Len()
}

func mismatch(file string, got any) error {
	return fmt.Errorf("%w: %s: unexpected cached %T", ErrTemplateParse, file, got)
}
