package source

import (
	"path/filepath"
	"strings"
)

// StripPathPrefix returns path relative to prefix as a slice of components.
// When path does not live under prefix, the absolute components of path are
// returned unchanged.
func StripPathPrefix(path, prefix string) []string {
	rel, err := filepath.Rel(prefix, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	rel = strings.TrimPrefix(filepath.Clean(rel), string(filepath.Separator))
	if rel == "." {
		return nil
	}
	return strings.Split(rel, string(filepath.Separator))
}
