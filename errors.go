package baselib

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common failure conditions. Callers match them with
// errors.Is after unwrapping through StoreError.
var (
	// ErrNotInitialized reports an operation on a store that holds no
	// document yet.
	ErrNotInitialized = errors.New("document not initialized")

	// ErrAlreadyLoaded reports a Load on a store that already holds data.
	ErrAlreadyLoaded = errors.New("document already contains data")

	// ErrBundleNotFound reports a reference to an unknown checker bundle.
	ErrBundleNotFound = errors.New("checker bundle not found")

	// ErrCheckerNotFound reports a reference to an unknown checker.
	ErrCheckerNotFound = errors.New("checker not found")

	// ErrIssueNotFound reports a reference to an unknown issue ID.
	ErrIssueNotFound = errors.New("issue not found")

	// ErrReportModuleNotFound reports a reference to an unknown report
	// module.
	ErrReportModuleNotFound = errors.New("report module not found")

	// ErrAlreadyRegistered reports a registration that collides with an
	// existing entity.
	ErrAlreadyRegistered = errors.New("already registered")
)

// Error kinds classify StoreError values into the framework's failure
// taxonomy.
const (
	// KindState marks lifecycle violations, e.g. writing before loading.
	KindState = "state"

	// KindNotFound marks references to entities that do not exist.
	KindNotFound = "not_found"

	// KindDuplicate marks registrations that collide with existing
	// entities.
	KindDuplicate = "duplicate"

	// KindSchema marks content that violates a document invariant.
	KindSchema = "schema"

	// KindIO marks failures of the underlying file operations.
	KindIO = "io"
)

// StoreError is the error type returned by Result and Configuration
// operations. It carries the operation name, a kind from the failure
// taxonomy and the underlying cause.
type StoreError struct {
	// Op is the operation that failed, e.g. "Result.RegisterIssue".
	Op string

	// Kind classifies the failure.
	Kind string

	// Err is the underlying error.
	Err error

	// Context holds optional structured details.
	Context map[string]any
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("baselib: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("baselib: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("baselib: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches against other StoreError values by kind and operation. A
// target with an empty Kind or Op matches any value of that field.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return errors.Is(e.Err, target)
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	return true
}

// WithContext returns a copy of the error with the given context attached.
func (e *StoreError) WithContext(ctx map[string]any) *StoreError {
	out := *e
	out.Context = make(map[string]any, len(ctx))
	for k, v := range ctx {
		out.Context[k] = v
	}
	return &out
}

// NewStateError returns a StoreError of kind KindState.
func NewStateError(op string, err error) *StoreError {
	return &StoreError{Op: op, Kind: KindState, Err: err}
}

// NewNotFoundError returns a StoreError of kind KindNotFound.
func NewNotFoundError(op string, err error) *StoreError {
	return &StoreError{Op: op, Kind: KindNotFound, Err: err}
}

// NewDuplicateError returns a StoreError of kind KindDuplicate.
func NewDuplicateError(op string, err error) *StoreError {
	return &StoreError{Op: op, Kind: KindDuplicate, Err: err}
}

// NewSchemaError returns a StoreError of kind KindSchema.
func NewSchemaError(op string, err error) *StoreError {
	return &StoreError{Op: op, Kind: KindSchema, Err: err}
}

// NewIOError returns a StoreError of kind KindIO.
func NewIOError(op string, err error) *StoreError {
	return &StoreError{Op: op, Kind: KindIO, Err: err}
}

// CloseWithLog closes c and logs a warning on failure instead of returning
// it. Intended for defer sites where the close error cannot change the
// outcome.
func CloseWithLog(c io.Closer, logger *slog.Logger, name string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("close failed", "name", name, "error", err)
	}
}
