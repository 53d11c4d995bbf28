package policy

import "fmt"

// UnknownCommandError is returned when a command type has no registered
// definition. Adding a command requires a config reload, never a runtime
// mutation.
type UnknownCommandError struct {
	CommandType string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.CommandType)
}
