package master

import "errors"

var (
	// ErrInvalidInput reports an empty or silent buffer or a non-positive
	// sample rate. No stage has run when it is returned.
	ErrInvalidInput = errors.New("master: invalid input")
	// ErrNumeric reports a stage that produced non-finite samples or
	// changed the buffer length.
	ErrNumeric = errors.New("master: numeric error")
	// ErrInvalidConfig reports a configuration that fails validation.
	ErrInvalidConfig = errors.New("master: invalid config")
)
