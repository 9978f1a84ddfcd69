package validate

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"mci-hq/mci/pkg/schema"
)

// Engine is the narrow capability the validator needs from the schema
// engine: a validating load that fails with a user-facing error message.
// It exists so tests can substitute a stub engine without real parsing.
type Engine interface {
	Load(path string, env map[string]string) error
}

// clientEngine adapts schema.NewClient to the Engine interface.
type clientEngine struct{}

func (clientEngine) Load(path string, env map[string]string) error {
	_, err := schema.NewClient(path, env)
	return err
}

// Validator validates one schema document. Each Validate call is
// independent and stateless; callers may validate different documents
// concurrently.
type Validator struct {
	path     string
	env      map[string]string
	engine   Engine
	lookPath func(string) (string, error)
}

// New creates a validator for a document path and effective environment.
func New(path string, env map[string]string) *Validator {
	return &Validator{
		path:     path,
		env:      env,
		engine:   clientEngine{},
		lookPath: exec.LookPath,
	}
}

// WithEngine replaces the schema engine. Used by tests to stub out
// primary validation.
func (v *Validator) WithEngine(e Engine) *Validator {
	v.engine = e
	return v
}

// WithLookPath replaces the PATH resolution used by the command
// availability check.
func (v *Validator) WithLookPath(look func(string) (string, error)) *Validator {
	v.lookPath = look
	return v
}

// Validate runs primary engine validation followed by supplementary
// advisory checks and assembles the result.
//
// Engine failure produces exactly one error carrying the engine's message
// verbatim. A reload failure after engine success indicates a filesystem
// anomaly between the two reads and is likewise terminal. Supplementary
// checks only ever contribute warnings.
func (v *Validator) Validate() ValidationResult {
	if err := v.engine.Load(v.path, v.env); err != nil {
		return invalid(ValidationError{Message: err.Error()})
	}

	doc, err := schema.LoadDocument(v.path)
	if err != nil {
		return invalid(ValidationError{
			Message: fmt.Sprintf("Failed to load schema data: %v", err),
		})
	}

	var warnings []ValidationWarning
	warnings = append(warnings, checkToolsetFiles(doc, filepath.Dir(v.path))...)
	warnings = append(warnings, checkCommands(doc, v.lookPath)...)

	return valid(warnings)
}
