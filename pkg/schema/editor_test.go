package schema

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEditor_AddToolsetJSON(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "mci.json", minimalSchema)

	editor, err := NewEditor(path)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	if err := editor.AddToolset("weather", "", ""); err != nil {
		t.Fatalf("AddToolset() error = %v", err)
	}
	if err := editor.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Format preserved: the file must still be JSON.
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved file is not JSON: %v", err)
	}
	toolsets, ok := doc["toolsets"].([]any)
	if !ok || len(toolsets) != 1 || toolsets[0] != "weather" {
		t.Errorf("toolsets = %v, want [weather]", doc["toolsets"])
	}
	// The rest of the document survives the round trip.
	if doc["schemaVersion"] != "1.0" {
		t.Errorf("schemaVersion lost: %v", doc["schemaVersion"])
	}
}

func TestEditor_AddToolsetYAML(t *testing.T) {
	content := `schemaVersion: "1.0"
metadata:
  name: yaml-tools
tools:
  - name: ping
`
	path := writeSchemaFile(t, t.TempDir(), "mci.yaml", content)

	editor, err := NewEditor(path)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	if err := editor.AddToolset("alerts", "", ""); err != nil {
		t.Fatalf("AddToolset() error = %v", err)
	}
	if err := editor.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Error("YAML document was rewritten as JSON")
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved file is not YAML: %v", err)
	}
	if toolsets, ok := doc["toolsets"].([]any); !ok || len(toolsets) != 1 || toolsets[0] != "alerts" {
		t.Errorf("toolsets = %v, want [alerts]", doc["toolsets"])
	}
}

func TestEditor_AddToolsetWithFilter(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "mci.json", minimalSchema)

	editor, err := NewEditor(path)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	if err := editor.AddToolset("analytics", FilterTags, "api,database"); err != nil {
		t.Fatalf("AddToolset() error = %v", err)
	}

	toolsets := editor.Document()["toolsets"].([]any)
	entry, ok := toolsets[0].(map[string]any)
	if !ok {
		t.Fatalf("filtered entry should be an object, got %T", toolsets[0])
	}
	want := map[string]any{"name": "analytics", "filter": "tags", "filterValue": "api,database"}
	if !reflect.DeepEqual(entry, want) {
		t.Errorf("entry = %v, want %v", entry, want)
	}
}

func TestEditor_AddToolsetReplacesExisting(t *testing.T) {
	content := `{
  "schemaVersion": "1.0",
  "metadata": {"name": "t"},
  "tools": [],
  "toolsets": ["weather", {"name": "analytics"}]
}`
	path := writeSchemaFile(t, t.TempDir(), "mci.json", content)

	editor, err := NewEditor(path)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}

	// Replacing a bare string entry with a filtered object.
	if err := editor.AddToolset("weather", FilterOnly, "forecast"); err != nil {
		t.Fatalf("AddToolset() error = %v", err)
	}
	// Replacing an object entry with a bare string.
	if err := editor.AddToolset("analytics", "", ""); err != nil {
		t.Fatalf("AddToolset() error = %v", err)
	}

	toolsets := editor.Document()["toolsets"].([]any)
	if len(toolsets) != 2 {
		t.Fatalf("expected 2 entries after updates, got %v", toolsets)
	}
	if entry, ok := toolsets[0].(map[string]any); !ok || entry["filter"] != "only" {
		t.Errorf("weather entry not updated: %v", toolsets[0])
	}
	if toolsets[1] != "analytics" {
		t.Errorf("analytics entry not replaced with bare string: %v", toolsets[1])
	}
}

func TestEditor_AddToolsetValidation(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "mci.json", minimalSchema)
	editor, err := NewEditor(path)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}

	if err := editor.AddToolset("", "", ""); err == nil {
		t.Error("expected error for empty toolset name")
	}
	if err := editor.AddToolset("x", FilterTags, ""); err == nil {
		t.Error("expected error for filter type without values")
	}
}

func TestEditor_ToolsetsNotAList(t *testing.T) {
	content := `{"schemaVersion": "1.0", "metadata": {"name": "t"}, "toolsets": "oops"}`
	path := writeSchemaFile(t, t.TempDir(), "mci.json", content)

	editor, err := NewEditor(path)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}

	err = editor.AddToolset("weather", "", "")
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Type != ErrorTypeStructural {
		t.Errorf("expected structural *ClientError, got %v", err)
	}
}

func TestEditor_MissingFile(t *testing.T) {
	_, err := NewEditor(filepath.Join(t.TempDir(), "mci.json"))

	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Type != ErrorTypeIO {
		t.Errorf("expected IO *ClientError, got %v", err)
	}
}

func TestEditor_SavedSchemaStillLoads(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "mci.json", minimalSchema)

	editor, err := NewEditor(path)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	if err := editor.AddToolset("weather", "", ""); err != nil {
		t.Fatalf("AddToolset() error = %v", err)
	}
	if err := editor.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := NewClient(path, nil); err != nil {
		t.Errorf("edited schema no longer loads: %v", err)
	}
}

func TestParseAddFilter(t *testing.T) {
	tests := []struct {
		spec      string
		wantType  FilterType
		wantValue string
		wantErr   bool
	}{
		{"tags:api,database", FilterTags, "api,database", false},
		{"only:a, b", FilterOnly, "a,b", false},
		{"without-tags:x", FilterWithoutTags, "x", false},
		{"toolsets:weather", "", "", true},
		{"bogus:a", "", "", true},
		{"tags:", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			filterType, value, err := ParseAddFilter(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAddFilter(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if filterType != tt.wantType || value != tt.wantValue {
				t.Errorf("ParseAddFilter(%q) = %v %q", tt.spec, filterType, value)
			}
		})
	}
}
