// Package errors contains functionality for creating and wrapping errors with
// improved formatting compared to the standard Go error functionality.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Errorf returns an error with a message formatted according to the format
// specifier.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Wrap returns a new error annotating err with a new message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &eddyError{cause: err, msg: message, top: getTop(err)}
}

// Wrapf returns a new error annotating err with a new message according to
// the format specifier.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &eddyError{cause: err, msg: fmt.Sprintf(format, args...), top: getTop(err)}
}

// WithContext returns a new error adding additional context to err.
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return &eddyError{cause: err, context: context, top: getTop(err)}
}

// WithContextf returns a new error adding additional context to err according
// to the format specifier.
func WithContextf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &eddyError{cause: err, context: fmt.Sprintf(format, args...), top: getTop(err)}
}

// SetTopLevelMsg returns a new error with the given top level message. The top
// level message is the first error message that gets printed when Error() is
// called on the returned error or any error wrapping it.
func SetTopLevelMsg(err error, top string) error {
	if err == nil {
		return nil
	}
	return &eddyError{cause: err, top: top}
}

// SetTopLevelMsgf returns a new error with the given top level message
// according to the format specifier.
func SetTopLevelMsgf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &eddyError{cause: err, top: fmt.Sprintf(format, args...)}
}

func getTop(e error) string {
	var ee *eddyError
	if errors.As(e, &ee) {
		return ee.top
	}
	return ""
}

// eddyError represents one or more details about an error. They are usually
// nested in the order the details were added.
type eddyError struct {
	// cause is the underlying error being wrapped. Always non-nil.
	cause error
	// msg is an additional message describing the error.
	msg string
	// context describes the scope the error occurred in.
	context string
	// top is the message to display first when printing the full error.
	top string
}

func (e *eddyError) Error() string {
	var b strings.Builder
	if e.top != "" {
		b.WriteString(e.top)
		b.WriteString("\n\tcaused by:\n")
	}
	e.printRecursive(&b)
	return b.String()
}

func (e *eddyError) printRecursive(b *strings.Builder) {
	if e.context != "" {
		fmt.Fprintf(b, "%s\n\t", e.context)
	}
	if e.msg != "" {
		b.WriteString(e.msg)
		b.WriteString(": ")
	}
	var next *eddyError
	if errors.As(e.cause, &next) && next != e {
		next.printRecursive(b)
	} else {
		b.WriteString(e.cause.Error())
	}
}

func (e *eddyError) Unwrap() error {
	return e.cause
}
