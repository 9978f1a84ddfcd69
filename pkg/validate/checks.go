package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// checkToolsetFiles warns about bare toolset references whose co-located
// file is missing. Declarations that are not plain strings (inline toolset
// objects) are not checked. A toolsets field of unexpected shape degrades
// to no warnings.
func checkToolsetFiles(doc map[string]any, schemaDir string) []ValidationWarning {
	var warnings []ValidationWarning

	toolsets, ok := doc["toolsets"].([]any)
	if !ok {
		return warnings
	}

	mciDir := filepath.Join(schemaDir, "mci")
	for _, entry := range toolsets {
		name, ok := entry.(string)
		if !ok {
			continue
		}

		jsonPath := filepath.Join(mciDir, name+".mci.json")
		yamlPath := filepath.Join(mciDir, name+".mci.yaml")
		if fileExists(jsonPath) || fileExists(yamlPath) {
			continue
		}

		warnings = append(warnings, ValidationWarning{
			Message:    fmt.Sprintf("Toolset file not found: %s", name),
			Suggestion: fmt.Sprintf("Create %s or %s, or update the toolset reference", jsonPath, yamlPath),
		})
	}

	return warnings
}

// checkCommands warns about external server commands that do not resolve
// on the execution search path. The probe is best-effort: a lookup that
// cannot reach a conclusion produces no warning, and no subprocess is ever
// executed. Servers are visited in name order so warnings are
// deterministic.
func checkCommands(doc map[string]any, lookPath func(string) (string, error)) []ValidationWarning {
	var warnings []ValidationWarning

	servers, ok := doc["mcp_servers"].(map[string]any)
	if !ok {
		return warnings
	}

	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, ok := servers[name].(map[string]any)
		if !ok {
			continue
		}
		command, ok := entry["command"].(string)
		if !ok || command == "" {
			continue
		}

		if _, err := lookPath(command); err != nil {
			warnings = append(warnings, ValidationWarning{
				Message:    fmt.Sprintf("MCP server command not found in PATH: %s (server: %s)", command, name),
				Suggestion: "Install the command or ensure it's in your PATH",
			})
		}
	}

	return warnings
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
