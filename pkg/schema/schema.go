package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is the typed model of an MCI tool-definition document.
type Schema struct {
	SchemaVersion string               `json:"schemaVersion" yaml:"schemaVersion"`
	Metadata      Metadata             `json:"metadata" yaml:"metadata"`
	Tools         []Tool               `json:"tools" yaml:"tools"`
	Toolsets      []ToolsetRef         `json:"toolsets,omitempty" yaml:"toolsets,omitempty"`
	MCPServers    map[string]MCPServer `json:"mcp_servers,omitempty" yaml:"mcp_servers,omitempty"`
}

// Metadata describes the schema document itself.
type Metadata struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Tool is a single tool definition.
type Tool struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	InputSchema map[string]any `json:"inputSchema,omitempty" yaml:"inputSchema,omitempty"`
	Execution   map[string]any `json:"execution,omitempty" yaml:"execution,omitempty"`
}

// HasTag reports whether the tool carries any of the given tags.
func (t Tool) HasTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Toolset is a named group of tool definitions.
type Toolset struct {
	Name  string `json:"name" yaml:"name"`
	Tools []Tool `json:"tools" yaml:"tools"`
}

// ToolsetRef is a toolset declaration, which is either a bare name
// referencing a co-located toolset file or an inline toolset object.
type ToolsetRef struct {
	Name   string
	Inline *Toolset
}

// IsReference reports whether the declaration is a bare file reference.
func (r ToolsetRef) IsReference() bool {
	return r.Inline == nil
}

// UnmarshalJSON accepts either a string reference or an inline object.
func (r *ToolsetRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.Name = name
		r.Inline = nil
		return nil
	}
	var ts Toolset
	if err := json.Unmarshal(data, &ts); err != nil {
		return fmt.Errorf("toolset must be a string reference or an object: %w", err)
	}
	r.Name = ts.Name
	r.Inline = &ts
	return nil
}

// MarshalJSON writes bare references back as strings.
func (r ToolsetRef) MarshalJSON() ([]byte, error) {
	if r.IsReference() {
		return json.Marshal(r.Name)
	}
	return json.Marshal(r.Inline)
}

// UnmarshalYAML accepts either a string reference or an inline object.
func (r *ToolsetRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		r.Name = name
		r.Inline = nil
		return nil
	}
	var ts Toolset
	if err := node.Decode(&ts); err != nil {
		return fmt.Errorf("toolset must be a string reference or an object: %w", err)
	}
	r.Name = ts.Name
	r.Inline = &ts
	return nil
}

// MarshalYAML writes bare references back as strings.
func (r ToolsetRef) MarshalYAML() (any, error) {
	if r.IsReference() {
		return r.Name, nil
	}
	return r.Inline, nil
}

// MCPServer declares an external server the document expects to be
// runnable on the host.
type MCPServer struct {
	Command string            `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}
