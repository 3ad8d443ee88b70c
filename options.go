package baselib

import (
	"log/slog"
	"time"
)

// ResultOption configures a Result store at construction time.
type ResultOption func(*Result)

// WithLogger sets the logger used for diagnostics.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) ResultOption {
	return func(r *Result) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithClock replaces the time source used for default bundle build dates.
// Intended for tests that need deterministic output.
func WithClock(clock func() time.Time) ResultOption {
	return func(r *Result) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// BundleOption configures a checker bundle registration.
type BundleOption func(*bundleOptions)

// bundleOptions holds the optional fields of a bundle registration.
type bundleOptions struct {
	summary      string
	buildDate    string
	buildDateSet bool
}

// WithBundleSummary sets the initial summary text of the bundle.
func WithBundleSummary(summary string) BundleOption {
	return func(o *bundleOptions) {
		o.summary = summary
	}
}

// WithBuildDate sets the bundle build date verbatim, including the empty
// string. Without this option the bundle is stamped with the current date
// in YYYY-MM-DD form.
func WithBuildDate(date string) BundleOption {
	return func(o *bundleOptions) {
		o.buildDate = date
		o.buildDateSet = true
	}
}

// CheckerOption configures a checker registration.
type CheckerOption func(*checkerOptions)

// checkerOptions holds the optional fields of a checker registration.
type checkerOptions struct {
	summary string
}

// WithCheckerSummary sets the initial summary text of the checker.
func WithCheckerSummary(summary string) CheckerOption {
	return func(o *checkerOptions) {
		o.summary = summary
	}
}

// WriteOption configures a Result.Write call.
type WriteOption func(*writeOptions)

// writeOptions holds the optional behavior of a write.
type writeOptions struct {
	generateSummary bool
}

// WithGeneratedSummary appends generated issue and status tallies to every
// checker and bundle summary before writing. Manually set summary text is
// kept; the generated sentences come after it.
func WithGeneratedSummary() WriteOption {
	return func(o *writeOptions) {
		o.generateSummary = true
	}
}
