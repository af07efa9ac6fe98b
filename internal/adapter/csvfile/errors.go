package csvfile

import "fmt"

// NotFoundError reports a dataset file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset file %q does not exist", e.Path)
}

// ParseError reports malformed dataset content. It is never recovered from;
// callers surface it all the way up.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse dataset %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// YearError reports a year value that is not representable as an integer.
type YearError struct {
	Value any
}

func (e *YearError) Error() string {
	return fmt.Sprintf("invalid year: %v", e.Value)
}
