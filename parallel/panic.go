package parallel

import "fmt"

// PanicError is raised on the caller's goroutine when a task panicked.
// It keeps the recovered value together with the task's range and stack so the
// failure can be traced back to the partition that produced it.
type PanicError struct {
	Range Range  // partition the task was working on
	Value any    // value passed to panic
	Stack []byte // stack of the task goroutine at recovery time
}

// Error implements error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: %s panicked: %v", e.Range, e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
