package domain

import "errors"

// Domain errors.
var (
	// ErrMissingURL is returned when a request does not carry a video URL.
	ErrMissingURL = errors.New("video URL is required")

	// ErrExtractionFailed is returned when the extraction tool cannot produce metadata.
	ErrExtractionFailed = errors.New("format extraction failed")

	// ErrMergeFailed is returned when the merge tool cannot combine the split streams.
	ErrMergeFailed = errors.New("stream merge failed")

	// ErrToolNotFound is returned when an external binary cannot be resolved.
	ErrToolNotFound = errors.New("external tool not found")
)

// ToolError wraps an external tool failure with the tool's diagnostic output.
type ToolError struct {
	Tool   string
	Op     string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := e.Tool + " " + e.Op + ": " + e.Err.Error()
	if e.Stderr != "" {
		msg += " | " + e.Stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError creates a new ToolError.
func NewToolError(tool, op, stderr string, err error) *ToolError {
	return &ToolError{
		Tool:   tool,
		Op:     op,
		Stderr: stderr,
		Err:    err,
	}
}
