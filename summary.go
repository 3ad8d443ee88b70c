package baselib

import (
	"fmt"

	"github.com/qc-framework/baselib/model"
)

// appendSummary joins summary fragments with a single space. Either side
// may be empty.
func appendSummary(existing, content string) string {
	if existing == "" {
		return content
	}
	if content == "" {
		return existing
	}
	return existing + " " + content
}

// generateSummaries appends one generated sentence with the issue count to
// every checker summary and a status tally block to every bundle summary.
// Manually set text stays in place; the generated sentences come after it.
func (r *Result) generateSummaries() {
	for _, bundle := range r.doc.Bundles {
		var completed, skipped, errored, unset int
		for _, checker := range bundle.Checkers {
			checker.Summary = appendSummary(checker.Summary, fmt.Sprintf("%d issue(s) are found.", len(checker.Issues)))
			switch checker.Status {
			case model.StatusCompleted:
				completed++
			case model.StatusSkipped:
				skipped++
			case model.StatusError:
				errored++
			default:
				unset++
			}
		}
		bundle.Summary = appendSummary(bundle.Summary, fmt.Sprintf(
			"%d checker(s) are executed. %d checker(s) are completed. %d checker(s) are skipped. %d checker(s) have internal error. %d checker(s) do not contain status.",
			len(bundle.Checkers), completed, skipped, errored, unset))
	}
}
