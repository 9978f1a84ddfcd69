package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Editor edits a schema document in place while preserving its original
// file format. It operates on the raw document tree rather than the typed
// model so that fields the model does not cover survive a round trip.
type Editor struct {
	path   string
	format FileFormat
	doc    map[string]any
}

// NewEditor loads a schema document for editing. The document must exist
// and parse in its declared format; errors are *ClientError values with
// user-facing messages.
func NewEditor(path string) (*Editor, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return &Editor{
		path:   path,
		format: FormatForPath(path),
		doc:    doc,
	}, nil
}

// Document returns the raw document tree being edited.
func (e *Editor) Document() map[string]any {
	return e.doc
}

// AddToolset adds a toolset reference to the document's toolsets list, or
// replaces an existing reference with the same name. Without a filter the
// entry is written as a bare string; with one it becomes an object carrying
// the filter type and its comma-separated values.
func (e *Editor) AddToolset(name string, filterType FilterType, filterValue string) error {
	if name == "" {
		return &ClientError{
			Type:    ErrorTypeStructural,
			Message: "Toolset name must not be empty",
		}
	}
	if (filterType == "") != (filterValue == "") {
		return &ClientError{
			Type:    ErrorTypeStructural,
			Message: "Filter type and filter values must be provided together",
		}
	}

	var toolsets []any
	switch existing := e.doc["toolsets"].(type) {
	case nil:
		toolsets = []any{}
	case []any:
		toolsets = existing
	default:
		return &ClientError{
			Type:     ErrorTypeStructural,
			Message:  "Field 'toolsets' is not a list",
			Location: "toolsets",
		}
	}

	var entry any = name
	if filterType != "" {
		entry = map[string]any{
			"name":        name,
			"filter":      string(filterType),
			"filterValue": filterValue,
		}
	}

	replaced := false
	for i, ts := range toolsets {
		if toolsetEntryName(ts) == name {
			toolsets[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		toolsets = append(toolsets, entry)
	}

	e.doc["toolsets"] = toolsets
	return nil
}

// toolsetEntryName extracts the name of a raw toolsets entry, which is
// either a bare string or an object with a name field.
func toolsetEntryName(entry any) string {
	switch v := entry.(type) {
	case string:
		return v
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
	}
	return ""
}

// Save writes the document back to the path it was loaded from, in the
// format it was loaded in.
func (e *Editor) Save() error {
	return e.SaveTo(e.path)
}

// SaveTo writes the document to a path, with the format selected by that
// path's extension.
func (e *Editor) SaveTo(path string) error {
	format := FormatForPath(path)
	if format == FormatUnknown {
		return &ClientError{
			Type:    ErrorTypeFormat,
			Message: fmt.Sprintf("Unsupported file format: %s", filepath.Ext(path)),
		}
	}

	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(e.doc, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = marshalYAML(e.doc)
	}
	if err != nil {
		return &ClientError{
			Type:    ErrorTypeIO,
			Message: fmt.Sprintf("Failed to encode %s: %v", path, err),
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ClientError{
			Type:    ErrorTypeIO,
			Message: fmt.Sprintf("Failed to write %s: %v", path, err),
		}
	}
	return nil
}

func marshalYAML(doc map[string]any) ([]byte, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// ParseAddFilter parses a filter specification for a toolset reference.
// The toolsets filter type is rejected here since a toolset cannot filter
// by toolsets; the comma-joined value string is returned as written into
// the document.
func ParseAddFilter(spec string) (FilterType, string, error) {
	filterType, values, err := ParseFilterSpec(spec)
	if err != nil {
		return "", "", err
	}
	if filterType == FilterToolsets {
		return "", "", fmt.Errorf("filter type %q cannot be used on a toolset reference", filterType)
	}
	return filterType, strings.Join(values, ","), nil
}
