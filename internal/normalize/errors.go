package normalize

import "fmt"

// ParseError reports a field that could not be parsed into its typed form.
type ParseError struct {
	Line   int64
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("row %d: parse %q value %q: %v", e.Line, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %q value %q: %v", e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownCategoryError reports a categorical label missing from the code map.
type UnknownCategoryError struct {
	Line   int64
	Column string
	Label  string
}

func (e *UnknownCategoryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("row %d: unknown %s label %q", e.Line, e.Column, e.Label)
	}
	return fmt.Sprintf("unknown %s label %q", e.Column, e.Label)
}
