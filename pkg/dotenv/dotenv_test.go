package dotenv

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeEnvFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	return path
}

func TestParseFile_Basic(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
	}{
		{
			name:    "simple assignments",
			content: "API_KEY=abc123\nTIMEOUT=30\n",
			want:    map[string]string{"API_KEY": "abc123", "TIMEOUT": "30"},
		},
		{
			name:    "comments and blank lines skipped",
			content: "# config\n\nAPI_KEY=abc\n\n# trailing comment\n",
			want:    map[string]string{"API_KEY": "abc"},
		},
		{
			name:    "export prefix stripped",
			content: "export API_KEY=abc\nexport  SPACED=v\n",
			want:    map[string]string{"API_KEY": "abc", "SPACED": "v"},
		},
		{
			name:    "whitespace around equals",
			content: "KEY = value\nOTHER =x\nTHIRD= y\n",
			want:    map[string]string{"KEY": "value", "OTHER": "x", "THIRD": "y"},
		},
		{
			name:    "double quotes stripped",
			content: `API_KEY="abc123"` + "\n",
			want:    map[string]string{"API_KEY": "abc123"},
		},
		{
			name:    "single quotes stripped",
			content: "API_KEY='abc123'\n",
			want:    map[string]string{"API_KEY": "abc123"},
		},
		{
			name:    "mismatched quotes left alone",
			content: `API_KEY="abc'` + "\n",
			want:    map[string]string{"API_KEY": `"abc'`},
		},
		{
			name:    "empty value",
			content: "EMPTY=\n",
			want:    map[string]string{"EMPTY": ""},
		},
		{
			name:    "single character value not unquoted",
			content: `Q="` + "\n",
			want:    map[string]string{"Q": `"`},
		},
		{
			name:    "no expansion inside values",
			content: "A=$HOME\nB=${OTHER}\n",
			want:    map[string]string{"A": "$HOME", "B": "${OTHER}"},
		},
		{
			name:    "malformed lines skipped",
			content: "VALID=1\nnot an assignment\n1BAD=x\n-ALSO=y\n",
			want:    map[string]string{"VALID": "1"},
		},
		{
			name:    "later assignment wins within file",
			content: "KEY=first\nKEY=second\n",
			want:    map[string]string{"KEY": "second"},
		},
		{
			name:    "export without space is not a keyword",
			content: "exportKEY=x\n",
			want:    map[string]string{"exportKEY": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEnvFile(t, t.TempDir(), ".env", tt.content)
			got := ParseFile(path)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	got := ParseFile(filepath.Join(t.TempDir(), "does-not-exist.env"))
	if len(got) != 0 {
		t.Errorf("expected empty map for missing file, got %v", got)
	}
}

func TestParseFile_Directory(t *testing.T) {
	// Opening a directory succeeds but reading fails; the parser must
	// still return an empty map.
	got := ParseFile(t.TempDir())
	if len(got) != 0 {
		t.Errorf("expected empty map for directory path, got %v", got)
	}
}

func TestParseFile_Idempotent(t *testing.T) {
	path := writeEnvFile(t, t.TempDir(), ".env", "A=1\nB=\"two\"\n# c\nexport C=3\n")

	first := ParseFile(path)
	second := ParseFile(path)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parses differ: %v vs %v", first, second)
	}
}
