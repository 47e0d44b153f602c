package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingBuffer indicates the buffer is required but not set.
	ErrMissingBuffer = errors.New("execution context: buffer is required")

	// ErrMissingCursor indicates the cursor is required but not set.
	ErrMissingCursor = errors.New("execution context: cursor is required")

	// ErrMissingSession indicates the session is required but not set.
	ErrMissingSession = errors.New("execution context: session is required")
)
