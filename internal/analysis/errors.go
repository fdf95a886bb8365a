package analysis

import "errors"

// ValidationError means the input cannot be analyzed. Message is meant for
// the person who supplied the input. No partial result exists. Senders is
// set when the names did not match and lists who does appear in the chat.
type ValidationError struct {
	Message string
	Senders []string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// ComputationError wraps an unexpected failure inside the metric engine.
type ComputationError struct {
	Err error
}

func (e *ComputationError) Error() string {
	return "An error occurred during analysis: " + e.Err.Error()
}

func (e *ComputationError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsComputation(err error) bool {
	var c *ComputationError
	return errors.As(err, &c)
}
