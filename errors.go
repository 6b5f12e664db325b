package veritas

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Error codes.
const (
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
	EINTERNAL    = "internal"
)

// Error is a domain error carrying a machine-readable code and a message safe
// to show to the user.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("veritas error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns the code of the first *Error in err's chain, EINTERNAL for
// any other non-nil error, and "" for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the first *Error in err's chain, or a
// generic message for other errors.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "An error occurred while processing your request. Please try again."
}

// ErrTooLarge is returned when an input would need a larger alignment table
// than the configured cap allows.
var ErrTooLarge = &Error{Code: EINVALID, Message: "input too large to diff"}

// ValidateText rejects strings that are not valid UTF-8. field names the
// input in the returned message.
func ValidateText(field, s string) error {
	if !utf8.ValidString(s) {
		return Errorf(EINVALID, "%s is not valid UTF-8 text", field)
	}
	return nil
}

// ValidatePhrases rejects phrase lists containing invalid UTF-8. A nil list is
// valid and means no phrases.
func ValidatePhrases(phrases []string) error {
	for i, p := range phrases {
		if !utf8.ValidString(p) {
			return Errorf(EINVALID, "phrase %d is not valid UTF-8 text", i)
		}
	}
	return nil
}
