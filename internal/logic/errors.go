package logic

import "fmt"

// InputError marks bad user-supplied input (unparseable date, unknown
// stat, empty player). Handlers map it to a 400; everything else is a 500.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

func inputErrorf(format string, args ...any) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}
