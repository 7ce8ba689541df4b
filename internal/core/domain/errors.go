package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a domain error with a structured error code.
// Codes follow the format TR-<CATEGORY>-<NNNN>; the category decides the
// error Kind reported to the user.
type DomainError struct {
	Code    string // Error code (e.g., "TR-PATH-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	var msg string
	if e.Details != "" {
		msg = fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	} else {
		msg = fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithDetailsf is WithDetails with a format string.
func (e *DomainError) WithDetailsf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("TR-ARG-4000", "missing required argument")

	// ErrConflictingArguments indicates mutually exclusive arguments were combined.
	ErrConflictingArguments = NewDomainError("TR-ARG-4001", "conflicting arguments")

	// ErrForceRequired indicates a destructive command was called without --force.
	ErrForceRequired = NewDomainError("TR-ARG-4002", "refusing to delete without --force")

	// ErrUnknownCommand indicates the command name is not recognised.
	ErrUnknownCommand = NewDomainError("TR-ARG-4003", "unknown command")

	// ErrInvalidArgument indicates an argument could not be parsed.
	ErrInvalidArgument = NewDomainError("TR-ARG-4004", "invalid argument")

	// ErrMissingCredentials indicates the base URL or token is not configured.
	ErrMissingCredentials = NewDomainError("TR-ARG-4010", "missing service configuration")
)

// ============================================================================
// Path Resolution Errors (PATH)
// ============================================================================

var (
	// ErrEmptyPath indicates the path has no segments.
	ErrEmptyPath = NewDomainError("TR-PATH-4000", "empty path")

	// ErrNoWorkspaceRoot indicates a relative path was used before a workspace root was stored.
	ErrNoWorkspaceRoot = NewDomainError("TR-PATH-4001", "no workspace root set (run ensure-root first)")

	// ErrSegmentNotFound indicates no child of the parent carries the segment title.
	ErrSegmentNotFound = NewDomainError("TR-PATH-4040", "segment not found under parent")

	// ErrParentHasNoChildren indicates the segment was looked up under a leaf note.
	ErrParentHasNoChildren = NewDomainError("TR-PATH-4041", "segment not found, parent has no children")
)

// ============================================================================
// Note and Move Errors (NOTE, MOVE)
// ============================================================================

var (
	// ErrNoteIDMissing indicates the create-note response carried no note id.
	ErrNoteIDMissing = NewDomainError("TR-NOTE-5020", "could not extract noteId from create-note response")

	// ErrNoParentBranches indicates a note to move has no parent edge.
	ErrNoParentBranches = NewDomainError("TR-MOVE-4090", "note has no parent branches")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = NewDomainError("TR-SYS-5030", "request failed")

	// ErrInvalidResponse indicates a response body could not be decoded.
	ErrInvalidResponse = NewDomainError("TR-SYS-5020", "invalid response")

	// ErrStore indicates the workspace file could not be written.
	ErrStore = NewDomainError("TR-SYS-5001", "workspace store error")

	// ErrConfig indicates configuration could not be loaded.
	ErrConfig = NewDomainError("TR-SYS-5002", "configuration error")
)

// ResolutionError reports the path segment that failed to resolve and the
// parent it was looked up under.
type ResolutionError struct {
	Segment string
	Parent  string
	Err     *DomainError
}

// NewResolutionError creates a ResolutionError for segment under parent.
func NewResolutionError(base *DomainError, segment, parent string) *ResolutionError {
	return &ResolutionError{Segment: segment, Parent: parent, Err: base}
}

func (e *ResolutionError) Error() string {
	if e.Err.Code == ErrParentHasNoChildren.Code {
		return fmt.Sprintf("resolve-path: %q not found, %q has no children", e.Segment, e.Parent)
	}
	return fmt.Sprintf("resolve-path: %q not found under %q", e.Segment, e.Parent)
}

// Unwrap returns the underlying DomainError.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// RemoteError is a non-success HTTP status returned by the service.
type RemoteError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// IsNotFound reports whether the service answered 404.
func (e *RemoteError) IsNotFound() bool {
	return e.Status == 404
}

// Kind classifies an error for reporting and exit codes.
type Kind string

const (
	KindUsage      Kind = "usage"
	KindResolution Kind = "resolution"
	KindRemote     Kind = "remote"
	KindInternal   Kind = "internal"
)

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) Kind {
	var re *RemoteError
	if errors.As(err, &re) {
		return KindRemote
	}
	code := GetErrorCode(err)
	switch {
	case strings.HasPrefix(code, "TR-ARG-"):
		return KindUsage
	case strings.HasPrefix(code, "TR-PATH-"):
		return KindResolution
	case strings.HasPrefix(code, "TR-SYS-5030"):
		return KindRemote
	default:
		return KindInternal
	}
}
