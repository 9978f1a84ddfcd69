package dotenv

import (
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
)

// candidateFiles returns the dotenv candidates under root, lowest
// precedence first.
func candidateFiles(root string) []string {
	return []string{
		filepath.Join(root, "mci", ".env"),
		filepath.Join(root, "mci", ".env.mci"),
		filepath.Join(root, ".env"),
		filepath.Join(root, ".env.mci"),
	}
}

// Resolve produces the effective environment for a project root.
//
// Candidate files are merged lowest precedence first, then the live
// process environment, then the explicit overrides, so that runtime
// environment always wins over checked-in defaults and caller-supplied
// values win over everything.
//
// An empty root means the current working directory. Resolve never fails;
// the worst case is an empty map. The returned map is a fresh snapshot
// owned by the caller.
func Resolve(root string, overrides map[string]string) map[string]string {
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else {
			root = "."
		}
	}

	merged := make(map[string]string)
	for _, path := range candidateFiles(root) {
		merge(merged, ParseFile(path))
	}

	merge(merged, processEnv())

	if overrides != nil {
		merge(merged, overrides)
	}

	return merged
}

// merge overlays src onto dst, src winning on key collisions.
func merge(dst map[string]string, src map[string]string) {
	// mergo cannot fail for flat string maps; fall back to a plain copy
	// loop just in case the invariant ever changes.
	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		for k, v := range src {
			dst[k] = v
		}
	}
}

// processEnv snapshots the live process environment as a map.
func processEnv() map[string]string {
	environ := os.Environ()
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.Index(kv, "="); i > 0 {
			vars[kv[:i]] = kv[i+1:]
		}
	}
	return vars
}
