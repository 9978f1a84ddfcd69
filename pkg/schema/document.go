package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileFormat identifies a supported document format.
type FileFormat string

const (
	FormatJSON    FileFormat = "json"
	FormatYAML    FileFormat = "yaml"
	FormatUnknown FileFormat = ""
)

// FormatForPath determines the document format from the file extension.
func FormatForPath(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// LoadDocument loads a schema document as a loosely-typed tree.
//
// The format is selected by file extension; anything other than .json,
// .yaml or .yml is an unsupported-format error. Callers use the raw tree
// for supplementary inspection of fields the typed model does not cover.
func LoadDocument(path string) (map[string]any, error) {
	format := FormatForPath(path)
	if format == FormatUnknown {
		return nil, &ClientError{
			Type:    ErrorTypeFormat,
			Message: fmt.Sprintf("Unsupported file format: %s", filepath.Ext(path)),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ClientError{
				Type:    ErrorTypeIO,
				Message: fmt.Sprintf("Schema file not found: %s", path),
			}
		}
		return nil, &ClientError{
			Type:    ErrorTypeIO,
			Message: fmt.Sprintf("Failed to read schema file %s: %v", path, err),
		}
	}

	doc := make(map[string]any)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &ClientError{
				Type:    ErrorTypeSyntax,
				Message: fmt.Sprintf("Invalid JSON in %s: %v", path, err),
			}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ClientError{
				Type:    ErrorTypeSyntax,
				Message: fmt.Sprintf("Invalid YAML in %s: %v", path, err),
			}
		}
	}

	return doc, nil
}
