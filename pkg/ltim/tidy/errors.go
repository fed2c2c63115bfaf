package tidy

import "fmt"

// MalformedValueError reports a value that could not be coerced to the type
// its column requires.
type MalformedValueError struct {
	Column string
	Value  string
	Record int // 0-based index in the table being cleaned
	Err    error
}

func (e *MalformedValueError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed %s value %q in record %d", e.Column, e.Value, e.Record)
	}
	return fmt.Sprintf("malformed %s value %q in record %d: %v", e.Column, e.Value, e.Record, e.Err)
}

func (e *MalformedValueError) Unwrap() error {
	return e.Err
}
