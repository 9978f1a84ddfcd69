package dotenv

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// assignmentPattern matches KEY=VALUE lines with an identifier key and
// optional whitespace around the equals sign.
var assignmentPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

// ParseFile parses a dotenv-style file and returns its variables.
//
// ParseFile is a total function: a missing or unreadable file yields an
// empty map, never an error. Optional configuration files are the normal
// case, so absence has zero failure surface.
//
// Within a file, later assignments for the same key overwrite earlier ones.
// Lines that are blank, comments, or do not match the KEY=VALUE shape are
// silently skipped.
func ParseFile(path string) map[string]string {
	vars := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		return vars
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// The export keyword is accepted and ignored.
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(line[len("export "):])
		}

		match := assignmentPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		key := match[1]
		value := unquote(match[2])
		vars[key] = value
	}

	// A scan error midway still returns whatever parsed cleanly.
	return vars
}

// unquote strips a single matching pair of outer quotes from a value.
// Mismatched quote types are left untouched, and no escape sequences or
// variable expansion are processed.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
