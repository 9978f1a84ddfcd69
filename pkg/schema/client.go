package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Client is the validating schema engine entry point. Construction parses
// and structurally validates the document; a successfully constructed
// client always holds a valid schema.
type Client struct {
	path   string
	env    map[string]string
	schema *Schema
	tools  []Tool // top-level tools plus resolved toolset tools
}

// NewClient loads, substitutes and validates a schema document.
//
// The environment mapping is used for {{env.KEY}} template substitution
// before decoding. On any failure the returned error is a *ClientError or
// *ErrorList carrying user-facing message text.
func NewClient(path string, env map[string]string) (*Client, error) {
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
				Message: fmt.Sprintf("File not found: %s", path),
			}
		}
		return nil, &ClientError{
			Type:    ErrorTypeIO,
			Message: fmt.Sprintf("Failed to read %s: %v", path, err),
		}
	}

	data = substituteEnv(data, env)

	var s Schema
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &s)
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeSyntax,
			Message: fmt.Sprintf("Failed to parse %s: %v", path, err),
		}
	}

	if err := validateSchema(&s); err != nil {
		return nil, err
	}

	c := &Client{
		path:   path,
		env:    env,
		schema: &s,
	}
	c.tools = c.collectTools()
	return c, nil
}

// validateSchema performs structural validation, accumulating every
// violation rather than stopping at the first.
func validateSchema(s *Schema) error {
	errs := NewErrorList()

	if s.SchemaVersion == "" {
		errs.AddStructural(
			"Missing required field 'schemaVersion'",
			"schemaVersion",
			SuggestMissingField("schemaVersion", `"1.0"`),
		)
	}

	if s.Metadata.Name == "" {
		errs.AddStructural(
			"Missing required field 'metadata.name'",
			"metadata.name",
			SuggestMissingField("metadata.name", `"my-tools"`),
		)
	}

	seen := make(map[string]bool)
	for i, tool := range s.Tools {
		location := fmt.Sprintf("tools[%d]", i)
		if tool.Name == "" {
			errs.AddStructural("Tool is missing required field 'name'", location, "")
			continue
		}
		if seen[tool.Name] {
			errs.AddStructural(
				fmt.Sprintf("Duplicate tool name %q", tool.Name),
				location,
				"Tool names must be unique within a schema",
			)
		}
		seen[tool.Name] = true
	}

	for i, ref := range s.Toolsets {
		if ref.IsReference() {
			continue
		}
		if ref.Inline.Name == "" {
			errs.AddStructural(
				"Inline toolset is missing required field 'name'",
				fmt.Sprintf("toolsets[%d]", i),
				"",
			)
		}
	}

	return errs.ToError()
}

// Schema returns the validated schema model.
func (c *Client) Schema() *Schema {
	return c.schema
}

// Path returns the path the schema was loaded from.
func (c *Client) Path() string {
	return c.path
}

// collectTools gathers top-level tools plus tools from every toolset.
// Bare toolset references resolve to co-located files under <dir>/mci/;
// a missing toolset file is a deployment concern, not a schema defect, so
// unresolvable references are skipped here and reported as warnings by the
// validator instead.
func (c *Client) collectTools() []Tool {
	tools := make([]Tool, 0, len(c.schema.Tools))
	tools = append(tools, c.schema.Tools...)

	for _, ref := range c.schema.Toolsets {
		if ts := c.resolveToolset(ref); ts != nil {
			tools = append(tools, ts.Tools...)
		}
	}
	return tools
}

// resolveToolset returns the toolset for a declaration, loading bare
// references from disk. Returns nil when the reference cannot be resolved.
func (c *Client) resolveToolset(ref ToolsetRef) *Toolset {
	if !ref.IsReference() {
		return ref.Inline
	}

	dir := filepath.Join(filepath.Dir(c.path), "mci")
	for _, name := range []string{ref.Name + ".mci.json", ref.Name + ".mci.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		data = substituteEnv(data, c.env)

		var ts Toolset
		if FormatForPath(path) == FormatJSON {
			err = json.Unmarshal(data, &ts)
		} else {
			err = yaml.Unmarshal(data, &ts)
		}
		if err != nil {
			continue
		}
		if ts.Name == "" {
			ts.Name = ref.Name
		}
		return &ts
	}
	return nil
}

// Tools returns every available tool, including toolset tools.
func (c *Client) Tools() []Tool {
	out := make([]Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// ListTools returns the available tool names.
func (c *Client) ListTools() []string {
	names := make([]string, 0, len(c.tools))
	for _, t := range c.tools {
		names = append(names, t.Name)
	}
	return names
}

// Only returns the tools whose names appear in the given list.
func (c *Client) Only(names []string) []Tool {
	want := toSet(names)
	var out []Tool
	for _, t := range c.tools {
		if want[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

// Without returns the tools whose names do not appear in the given list.
func (c *Client) Without(names []string) []Tool {
	skip := toSet(names)
	var out []Tool
	for _, t := range c.tools {
		if !skip[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

// Tags returns the tools carrying at least one of the given tags.
func (c *Client) Tags(tags []string) []Tool {
	var out []Tool
	for _, t := range c.tools {
		if t.HasTag(tags) {
			out = append(out, t)
		}
	}
	return out
}

// WithoutTags returns the tools carrying none of the given tags.
func (c *Client) WithoutTags(tags []string) []Tool {
	var out []Tool
	for _, t := range c.tools {
		if !t.HasTag(tags) {
			out = append(out, t)
		}
	}
	return out
}

// Toolsets returns the tools belonging to the named toolsets.
func (c *Client) Toolsets(names []string) []Tool {
	want := toSet(names)
	var out []Tool
	for _, ref := range c.schema.Toolsets {
		if !want[ref.Name] {
			continue
		}
		if ts := c.resolveToolset(ref); ts != nil {
			out = append(out, ts.Tools...)
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
