package baselib

import (
	"slices"

	"github.com/qc-framework/baselib/model"
)

// CheckerBundleNames returns the names of all registered bundles in
// registration order.
func (r *Result) CheckerBundleNames() []string {
	if r.doc == nil {
		return nil
	}
	names := make([]string, 0, len(r.doc.Bundles))
	for _, b := range r.doc.Bundles {
		names = append(names, b.Name)
	}
	return names
}

// CheckerBundles returns all bundles in registration order. The returned
// pointers reference the live document.
func (r *Result) CheckerBundles() []*model.CheckerBundle {
	if r.doc == nil {
		return nil
	}
	return slices.Clone(r.doc.Bundles)
}

// CheckerBundle returns the bundle with the given name.
func (r *Result) CheckerBundle(name string) (*model.CheckerBundle, error) {
	return r.bundle("Result.CheckerBundle", name)
}

// Checkers returns the checkers of a bundle in registration order.
func (r *Result) Checkers(bundleName string) ([]*model.Checker, error) {
	bundle, err := r.bundle("Result.Checkers", bundleName)
	if err != nil {
		return nil, err
	}
	return slices.Clone(bundle.Checkers), nil
}

// Checker returns the checker with the given ID on a bundle.
func (r *Result) Checker(bundleName, checkerID string) (*model.Checker, error) {
	return r.checker("Result.Checker", bundleName, checkerID)
}

// CheckerIDs returns the IDs of a bundle's checkers in registration order.
func (r *Result) CheckerIDs(bundleName string) ([]string, error) {
	bundle, err := r.bundle("Result.CheckerIDs", bundleName)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(bundle.Checkers))
	for _, c := range bundle.Checkers {
		ids = append(ids, c.CheckerID)
	}
	return ids, nil
}

// Issues returns the issues of a checker in registration order.
func (r *Result) Issues(bundleName, checkerID string) ([]*model.Issue, error) {
	checker, err := r.checker("Result.Issues", bundleName, checkerID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(checker.Issues), nil
}

// IssueIDs returns the IDs of a checker's issues in registration order.
func (r *Result) IssueIDs(bundleName, checkerID string) ([]int, error) {
	checker, err := r.checker("Result.IssueIDs", bundleName, checkerID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(checker.Issues))
	for _, issue := range checker.Issues {
		ids = append(ids, issue.IssueID)
	}
	return ids, nil
}

// CheckerIssueCount returns the number of issues on one checker.
func (r *Result) CheckerIssueCount(bundleName, checkerID string) (int, error) {
	checker, err := r.checker("Result.CheckerIssueCount", bundleName, checkerID)
	if err != nil {
		return 0, err
	}
	return len(checker.Issues), nil
}

// CheckerBundleIssueCount returns the number of issues over all checkers of
// one bundle.
func (r *Result) CheckerBundleIssueCount(bundleName string) (int, error) {
	bundle, err := r.bundle("Result.CheckerBundleIssueCount", bundleName)
	if err != nil {
		return 0, err
	}
	return bundle.IssueCount(), nil
}

// IssueCount returns the number of issues in the whole document.
func (r *Result) IssueCount() int {
	if r.doc == nil {
		return 0
	}
	return r.doc.IssueCount()
}

// IssuesByRuleUID returns every issue in the document that references the
// given rule UID.
func (r *Result) IssuesByRuleUID(ruleUID string) []*model.Issue {
	if r.doc == nil {
		return nil
	}
	var issues []*model.Issue
	for _, bundle := range r.doc.Bundles {
		for _, checker := range bundle.Checkers {
			for _, issue := range checker.Issues {
				if issue.RuleUID == ruleUID {
					issues = append(issues, issue)
				}
			}
		}
	}
	return issues
}

// ParamFromCheckerBundle returns the value of a bundle param, or nil when
// the param does not exist.
func (r *Result) ParamFromCheckerBundle(bundleName, name string) (any, error) {
	bundle, err := r.bundle("Result.ParamFromCheckerBundle", bundleName)
	if err != nil {
		return nil, err
	}
	for _, p := range bundle.Params {
		if p.Name == name {
			return p.Value, nil
		}
	}
	return nil, nil
}

// ParamFromChecker returns the value of a checker param, or nil when the
// param does not exist.
func (r *Result) ParamFromChecker(bundleName, checkerID, name string) (any, error) {
	checker, err := r.checker("Result.ParamFromChecker", bundleName, checkerID)
	if err != nil {
		return nil, err
	}
	for _, p := range checker.Params {
		if p.Name == name {
			return p.Value, nil
		}
	}
	return nil, nil
}

// DomainSpecificInfo returns the domain specific info blocks attached to an
// issue.
func (r *Result) DomainSpecificInfo(bundleName, checkerID string, issueID int) ([]*model.DomainSpecificInfo, error) {
	issue, err := r.issue("Result.DomainSpecificInfo", bundleName, checkerID, issueID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(issue.DomainSpecificInfo), nil
}

// CheckerStatus returns the status of the first checker with the given ID
// anywhere in the document, or the empty status when no such checker
// exists.
func (r *Result) CheckerStatus(checkerID string) model.Status {
	checker := r.findCheckerAnywhere(checkerID)
	if checker == nil {
		return ""
	}
	return checker.Status
}

// HasIssueInRules reports whether any issue in the document references one
// of the given rule UIDs. An empty set reports false.
func (r *Result) HasIssueInRules(ruleUIDs []string) bool {
	if r.doc == nil || len(ruleUIDs) == 0 {
		return false
	}
	for _, bundle := range r.doc.Bundles {
		for _, checker := range bundle.Checkers {
			for _, issue := range checker.Issues {
				if slices.Contains(ruleUIDs, issue.RuleUID) {
					return true
				}
			}
		}
	}
	return false
}

// HasIssueInCheckers reports whether any checker with one of the given IDs
// carries at least one issue. An empty set reports false.
func (r *Result) HasIssueInCheckers(checkerIDs []string) bool {
	if r.doc == nil || len(checkerIDs) == 0 {
		return false
	}
	for _, bundle := range r.doc.Bundles {
		for _, checker := range bundle.Checkers {
			if slices.Contains(checkerIDs, checker.CheckerID) && len(checker.Issues) > 0 {
				return true
			}
		}
	}
	return false
}

// AllCheckersCompleted reports whether every checker in the document has
// the completed status. A document without checkers reports true.
func (r *Result) AllCheckersCompleted() bool {
	if r.doc == nil {
		return true
	}
	for _, bundle := range r.doc.Bundles {
		for _, checker := range bundle.Checkers {
			if checker.Status != model.StatusCompleted {
				return false
			}
		}
	}
	return true
}

// CheckersCompletedWithoutIssue reports whether every named checker exists,
// has the completed status and carries no issues. An empty set reports
// true; an unknown checker ID reports false.
func (r *Result) CheckersCompletedWithoutIssue(checkerIDs []string) bool {
	for _, id := range checkerIDs {
		checker := r.findCheckerAnywhere(id)
		if checker == nil {
			return false
		}
		if checker.Status != model.StatusCompleted || len(checker.Issues) > 0 {
			return false
		}
	}
	return true
}

// AllCheckersCompletedWithoutIssue reports whether every checker in the
// document has the completed status and carries no issues. A document
// without checkers reports true.
func (r *Result) AllCheckersCompletedWithoutIssue() bool {
	if r.doc == nil {
		return true
	}
	for _, bundle := range r.doc.Bundles {
		for _, checker := range bundle.Checkers {
			if checker.Status != model.StatusCompleted || len(checker.Issues) > 0 {
				return false
			}
		}
	}
	return true
}

// findCheckerAnywhere returns the first checker with the given ID in any
// bundle, or nil.
func (r *Result) findCheckerAnywhere(checkerID string) *model.Checker {
	if r.doc == nil {
		return nil
	}
	for _, bundle := range r.doc.Bundles {
		if checker := findChecker(bundle, checkerID); checker != nil {
			return checker
		}
	}
	return nil
}
