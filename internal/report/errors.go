package report

import "fmt"

// InputError indicates the capture JSON was missing, unreadable, or not
// valid. It is fatal to the whole generation; no output is produced.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid capture input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// RenderError indicates the document could not be assembled or serialized.
// It is fatal; no usable partial output is left behind.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering report: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
