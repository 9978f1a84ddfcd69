package validate

// ValidationError is a hard failure that blocks use of the document.
type ValidationError struct {
	Message  string `json:"message" yaml:"message"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// ValidationWarning is an advisory finding that never affects validity.
type ValidationWarning struct {
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// ValidationResult is the outcome of one validation call. It is a value
// object, constructed once and never mutated.
//
// Valid is true exactly when Errors is empty. Warnings are only populated
// for valid documents, since the supplementary checks need a structurally
// loadable document to inspect.
type ValidationResult struct {
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
	Valid    bool                `json:"valid"`
}

// invalid builds a terminal result from a single error.
func invalid(err ValidationError) ValidationResult {
	return ValidationResult{
		Errors:   []ValidationError{err},
		Warnings: []ValidationWarning{},
		Valid:    false,
	}
}

// valid builds a successful result carrying the accumulated warnings.
func valid(warnings []ValidationWarning) ValidationResult {
	if warnings == nil {
		warnings = []ValidationWarning{}
	}
	return ValidationResult{
		Errors:   []ValidationError{},
		Warnings: warnings,
		Valid:    true,
	}
}
