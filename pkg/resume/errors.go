package resume

import (
	"fmt"
)

// InputFormatError reports a table that is unreadable, malformed or empty.
type InputFormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InputFormatError) Error() (msg string) {
	msg = "invalid input table"
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	msg = msg + ": " + e.Reason
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *InputFormatError) Unwrap() (err error) {
	err = e.Err
	return err
}

// MissingRequiredFieldError reports an absent personal_info field.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() (msg string) {
	msg = fmt.Sprintf("required field %s/%s not found", SectionPersonalInfo, e.Field)
	return msg
}
