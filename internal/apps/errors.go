package apps

import (
	"errors"
	"fmt"
)

// Code categorizes launcher errors.
type Code string

const (
	// CodeNotFound indicates a package or activity is no longer resolvable.
	CodeNotFound Code = "NOT_FOUND"

	// CodeLaunchFailure indicates the platform refused to start an activity
	// under both the bound and the invoking profile.
	CodeLaunchFailure Code = "LAUNCH_FAILURE"

	// CodeProtected indicates an operation that is not allowed on the target,
	// e.g. uninstalling a system app.
	CodeProtected Code = "PROTECTED_OPERATION"

	// CodeEnumerationPartial indicates one profile's app listing failed.
	CodeEnumerationPartial Code = "ENUMERATION_PARTIAL_FAILURE"

	// CodeInvalidArgument indicates a request that can never succeed as given.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Error is the structured error of the launcher core.
//
// Every Error is local and recoverable. Notice returns the message the UI
// layer shows to the user.
type Error struct {
	Code    Code
	Message string
	Package string
	Profile Profile
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Package != "" {
		msg = fmt.Sprintf("%s (package=%s", msg, e.Package)
		if e.Profile != "" {
			msg += ", profile=" + string(e.Profile)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Notice returns the user-visible message.
func (e *Error) Notice() string {
	return e.Message
}

// Notice extracts the user-visible message from err, or "" if err carries none.
func Notice(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Notice()
	}
	return ""
}

// CodeOf returns the Code carried by err, or "" when err is not an *Error.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsLaunchFailure reports whether err is a LaunchFailure error.
func IsLaunchFailure(err error) bool { return CodeOf(err) == CodeLaunchFailure }

// IsProtected reports whether err is a ProtectedOperation error.
func IsProtected(err error) bool { return CodeOf(err) == CodeProtected }

// IsInvalid reports whether err is an InvalidArgument error.
func IsInvalid(err error) bool { return CodeOf(err) == CodeInvalidArgument }

// NewNotFound creates a NotFound error for a package under a profile.
func NewNotFound(pkg string, profile Profile) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: "app not found",
		Package: pkg,
		Profile: profile,
	}
}

// NewLaunchFailure creates a LaunchFailure error wrapping the last platform error.
func NewLaunchFailure(pkg string, profile Profile, err error) *Error {
	return &Error{
		Code:    CodeLaunchFailure,
		Message: "unable to open app",
		Package: pkg,
		Profile: profile,
		Err:     err,
	}
}

// NewProtected creates a ProtectedOperation error.
func NewProtected(pkg, message string) *Error {
	return &Error{
		Code:    CodeProtected,
		Message: message,
		Package: pkg,
	}
}

// NewEnumerationFailure creates an EnumerationPartialFailure error for one profile.
func NewEnumerationFailure(profile Profile, err error) *Error {
	return &Error{
		Code:    CodeEnumerationPartial,
		Message: "app listing failed for profile",
		Profile: profile,
		Err:     err,
	}
}

// NewInvalid creates an InvalidArgument error.
func NewInvalid(format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}
