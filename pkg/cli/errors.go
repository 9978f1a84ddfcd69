package cli

import "fmt"

// FlagError represents an invalid command-line flag value.
type FlagError struct {
	Flag    string
	Message string
}

func (e *FlagError) Error() string {
	return fmt.Sprintf("invalid --%s: %s", e.Flag, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewFlagError creates a new FlagError.
func NewFlagError(flag, message string) *FlagError {
	return &FlagError{
		Flag:    flag,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
