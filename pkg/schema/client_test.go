package schema

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeSchemaFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write schema file: %v", err)
	}
	return path
}

const minimalSchema = `{
  "schemaVersion": "1.0",
  "metadata": {"name": "test-tools"},
  "tools": [
    {"name": "get_weather", "description": "Fetch weather", "tags": ["api", "weather"]},
    {"name": "get_time", "tags": ["utility"]}
  ]
}`

func TestNewClient_ValidJSON(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "mci.json", minimalSchema)

	client, err := NewClient(path, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if got := client.Schema().Metadata.Name; got != "test-tools" {
		t.Errorf("metadata name = %q, want %q", got, "test-tools")
	}
	if names := client.ListTools(); !reflect.DeepEqual(names, []string{"get_weather", "get_time"}) {
		t.Errorf("ListTools() = %v", names)
	}
}

func TestNewClient_ValidYAML(t *testing.T) {
	content := `
schemaVersion: "1.0"
metadata:
  name: yaml-tools
tools:
  - name: ping
    tags: [network]
`
	path := writeSchemaFile(t, t.TempDir(), "mci.yaml", content)

	client, err := NewClient(path, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if names := client.ListTools(); !reflect.DeepEqual(names, []string{"ping"}) {
		t.Errorf("ListTools() = %v", names)
	}
}

func TestNewClient_FileNotFound(t *testing.T) {
	_, err := NewClient(filepath.Join(t.TempDir(), "mci.json"), nil)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if clientErr.Type != ErrorTypeIO {
		t.Errorf("error type = %q, want %q", clientErr.Type, ErrorTypeIO)
	}
}

func TestNewClient_UnsupportedFormat(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "mci.toml", "schemaVersion = '1.0'\n")

	_, err := NewClient(path, nil)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if clientErr.Type != ErrorTypeFormat {
		t.Errorf("error type = %q, want %q", clientErr.Type, ErrorTypeFormat)
	}
}

func TestNewClient_MalformedJSON(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "mci.json", "{not json")

	_, err := NewClient(path, nil)

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if clientErr.Type != ErrorTypeSyntax {
		t.Errorf("error type = %q, want %q", clientErr.Type, ErrorTypeSyntax)
	}
}

func TestNewClient_StructuralErrorsAccumulate(t *testing.T) {
	// Both required fields missing plus a duplicate tool name: every
	// violation is reported in one pass.
	content := `{
  "tools": [
    {"name": "dup"},
    {"name": "dup"},
    {"description": "anonymous"}
  ]
}`
	path := writeSchemaFile(t, t.TempDir(), "mci.json", content)

	_, err := NewClient(path, nil)
	var errList *ErrorList
	if !errors.As(err, &errList) {
		t.Fatalf("expected *ErrorList, got %T: %v", err, err)
	}
	if len(errList.Errors) != 4 {
		t.Errorf("expected 4 accumulated errors, got %d: %v", len(errList.Errors), errList)
	}
}

func TestNewClient_TemplateSubstitution(t *testing.T) {
	content := `{
  "schemaVersion": "1.0",
  "metadata": {"name": "{{env.SCHEMA_NAME}}"},
  "tools": [{"name": "noop", "description": "key is {{env.MISSING}}"}]
}`
	path := writeSchemaFile(t, t.TempDir(), "mci.json", content)

	client, err := NewClient(path, map[string]string{"SCHEMA_NAME": "substituted"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if got := client.Schema().Metadata.Name; got != "substituted" {
		t.Errorf("metadata name = %q, want %q", got, "substituted")
	}
	// Unresolved placeholders stay intact.
	if got := client.Tools()[0].Description; got != "key is {{env.MISSING}}" {
		t.Errorf("description = %q", got)
	}
}

func TestClient_Filters(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "mci.json", minimalSchema)
	client, err := NewClient(path, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	tests := []struct {
		name string
		got  []Tool
		want []string
	}{
		{"only", client.Only([]string{"get_time"}), []string{"get_time"}},
		{"without", client.Without([]string{"get_time"}), []string{"get_weather"}},
		{"tags", client.Tags([]string{"api"}), []string{"get_weather"}},
		{"without tags", client.WithoutTags([]string{"api"}), []string{"get_time"}},
		{"tags no match", client.Tags([]string{"nope"}), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, tool := range tt.got {
				names = append(names, tool.Name)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("got %v, want %v", names, tt.want)
			}
		})
	}
}

func TestClient_InlineAndReferencedToolsets(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "mci/weather.mci.json", `{"name": "weather", "tools": [{"name": "forecast"}]}`)

	content := `{
  "schemaVersion": "1.0",
  "metadata": {"name": "t"},
  "tools": [{"name": "base"}],
  "toolsets": [
    "weather",
    "missing",
    {"name": "inline-set", "tools": [{"name": "inline_tool"}]}
  ]
}`
	path := writeSchemaFile(t, dir, "mci.json", content)

	client, err := NewClient(path, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	// Missing toolset files are skipped, not fatal.
	want := []string{"base", "forecast", "inline_tool"}
	if names := client.ListTools(); !reflect.DeepEqual(names, want) {
		t.Errorf("ListTools() = %v, want %v", names, want)
	}

	fromSet := client.Toolsets([]string{"weather"})
	if len(fromSet) != 1 || fromSet[0].Name != "forecast" {
		t.Errorf("Toolsets(weather) = %v", fromSet)
	}
}

func TestParseFilterSpec(t *testing.T) {
	tests := []struct {
		spec       string
		wantType   FilterType
		wantValues []string
		wantErr    bool
	}{
		{"tags:api,database", FilterTags, []string{"api", "database"}, false},
		{"only:a", FilterOnly, []string{"a"}, false},
		{"without-tags: x , y ", FilterWithoutTags, []string{"x", "y"}, false},
		{"toolsets:weather", FilterToolsets, []string{"weather"}, false},
		{"except:a,,b", FilterExcept, []string{"a", "b"}, false},
		{"bogus:a", "", nil, true},
		{"noseparator", "", nil, true},
		{"tags:", "", nil, true},
		{"", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			filterType, values, err := ParseFilterSpec(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilterSpec(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if filterType != tt.wantType || !reflect.DeepEqual(values, tt.wantValues) {
				t.Errorf("ParseFilterSpec(%q) = %v %v", tt.spec, filterType, values)
			}
		})
	}
}

func TestFindSchemaFile(t *testing.T) {
	t.Run("json preferred over yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeSchemaFile(t, dir, "mci.yaml", "schemaVersion: '1.0'\n")
		writeSchemaFile(t, dir, "mci.json", minimalSchema)

		found := FindSchemaFile(dir)
		if filepath.Base(found) != "mci.json" {
			t.Errorf("FindSchemaFile() = %q, want mci.json", found)
		}
	})

	t.Run("yml fallback", func(t *testing.T) {
		dir := t.TempDir()
		writeSchemaFile(t, dir, "mci.yml", "schemaVersion: '1.0'\n")

		found := FindSchemaFile(dir)
		if filepath.Base(found) != "mci.yml" {
			t.Errorf("FindSchemaFile() = %q, want mci.yml", found)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		if found := FindSchemaFile(t.TempDir()); found != "" {
			t.Errorf("FindSchemaFile() = %q, want empty", found)
		}
	})
}
