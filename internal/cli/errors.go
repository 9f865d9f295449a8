package cli

import "fmt"

// ExitError carries a command's exit status to main without a message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
