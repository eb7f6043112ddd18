package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithJSONDir loads every *.json catalog found in fsys. Files follow the
// {lang}/{namespace}.json convention:
//
//	en/common.json
//	en/errors.json
//	de/common.json
func WithJSONDir(fsys fs.FS) Option {
	return func(b *Bundle) error {
		return b.loadFS(fsys, json.Unmarshal, ".json")
	}
}

// WithYAMLDir loads every *.yaml / *.yml catalog found in fsys, following
// the same {lang}/{namespace}.ext convention as WithJSONDir.
func WithYAMLDir(fsys fs.FS) Option {
	return func(b *Bundle) error {
		return b.loadFS(fsys, yaml.Unmarshal, ".yaml", ".yml")
	}
}

func (b *Bundle) loadFS(fsys fs.FS, unmarshal func([]byte, any) error, exts ...string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExt(p, exts) {
			return nil
		}

		dir := path.Dir(p)
		if dir == "." {
			return fmt.Errorf("%w: %q is not inside a language directory", ErrInvalidFile, p)
		}
		lang := path.Base(dir)
		namespace := strings.TrimSuffix(path.Base(p), path.Ext(p))

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: read %q: %w", p, err)
		}
		var catalog map[string]any
		if err := unmarshal(raw, &catalog); err != nil {
			return fmt.Errorf("%w: %q: %s", ErrInvalidFile, p, err)
		}

		b.merge(lang, namespace, catalog)
		return nil
	})
}

func hasExt(p string, exts []string) bool {
	got := strings.ToLower(path.Ext(p))
	for _, ext := range exts {
		if got == ext {
			return true
		}
	}
	return false
}
