package schema

import (
	"os"
	"path/filepath"
)

// FindSchemaFile locates an MCI schema file in a directory, preferring
// JSON when both formats exist. Returns an empty string when the directory
// holds no schema file. An empty directory means the current directory.
func FindSchemaFile(dir string) string {
	if dir == "" {
		dir = "."
	}

	for _, name := range []string{"mci.json", "mci.yaml", "mci.yml"} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}
