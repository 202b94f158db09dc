package engine

import "fmt"

// InvalidArgumentError reports misuse of the engine's contract: mismatched
// log/entry references, a settings payload that does not match its progression
// type, or out-of-band target values. These are integration errors and are
// returned immediately rather than folded into a NextState result.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

func invalidArgf(format string, args ...any) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}
