package schema

import (
	"fmt"
	"strings"
)

// ErrorType categorizes the cause of a schema engine failure.
type ErrorType string

const (
	ErrorTypeIO         ErrorType = "io"         // file missing or unreadable
	ErrorTypeFormat     ErrorType = "format"     // unsupported file extension
	ErrorTypeSyntax     ErrorType = "syntax"     // JSON/YAML parse failure
	ErrorTypeStructural ErrorType = "structural" // schema violation
)

// ClientError is the engine's domain error. Its message is user-facing
// text; callers surface it verbatim rather than reclassifying it.
type ClientError struct {
	Type       ErrorType
	Message    string
	Location   string // dotted path into the document, when known
	Suggestion string // suggested fix, when one exists
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Location != "" {
		sb.WriteString(fmt.Sprintf(" (at %s)", e.Location))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf(". %s", e.Suggestion))
	}
	return sb.String()
}

// ErrorList accumulates structural errors so that a single validation pass
// reports every violation instead of stopping at the first.
type ErrorList struct {
	Errors []*ClientError
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*ClientError, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *ClientError) {
	el.Errors = append(el.Errors, err)
}

// AddStructural creates and adds a structural error.
func (el *ErrorList) AddStructural(message, location, suggestion string) {
	el.Add(&ClientError{
		Type:       ErrorTypeStructural,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors reports whether any error has been accumulated.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// ToError returns the list as an error, or nil when the list is empty.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// Error implements the error interface, joining the accumulated messages.
func (el *ErrorList) Error() string {
	if len(el.Errors) == 1 {
		return el.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d schema errors:", len(el.Errors)))
	for _, e := range el.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// SuggestMissingField builds a suggestion for a missing required field.
func SuggestMissingField(fieldName, exampleValue string) string {
	if exampleValue != "" {
		return fmt.Sprintf("Add '%s: %s' to the schema", fieldName, exampleValue)
	}
	return fmt.Sprintf("Add '%s' field to the schema", fieldName)
}
