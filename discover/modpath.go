package discover

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModulePath resolves the Go module path enclosing dir by walking up to
// the nearest go.mod. It returns "" when dir is outside any module.
func ModulePath(dir string) string {
	for d := dir; ; {
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))
		if err == nil {
			parsed, err := modfile.Parse("go.mod", data, nil)
			if err != nil || parsed.Module == nil {
				return ""
			}
			return parsed.Module.Mod.Path
		}
		parent := filepath.Dir(d)
		if parent == d {
			return ""
		}
		d = parent
	}
}
