package model

import (
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/qc-framework/baselib/rule"
)

// CheckerResults is the root of the result dialect. Result documents carry
// the findings of checker bundle runs and are conventionally written with
// the .xqar extension.
//
// The result dialect omits attributes whose value is empty.
type CheckerResults struct {
	XMLName xml.Name         `xml:"CheckerResults"`
	Version string           `xml:"version,attr,omitempty"`
	Bundles []*CheckerBundle `xml:"CheckerBundle"`
}

// CheckerBundle groups the checkers of one checker application together
// with bundle-level params and a summary.
type CheckerBundle struct {
	// BuildDate is the build or run date of the bundle, formatted as
	// YYYY-MM-DD.
	BuildDate   string `xml:"build_date,attr,omitempty"`
	Description string `xml:"description,attr,omitempty"`
	// Name identifies the bundle and is unique within a document.
	Name    string `xml:"name,attr,omitempty"`
	Version string `xml:"version,attr,omitempty"`
	Summary string `xml:"summary,attr,omitempty"`

	Params   []Param    `xml:"Param"`
	Checkers []*Checker `xml:"Checker"`
}

// Checker is a single check within a bundle: the rules it addresses, the
// issues it raised and its execution status.
type Checker struct {
	// Status is the execution outcome. Empty until a status is set.
	Status Status `xml:"status,attr,omitempty"`
	// CheckerID identifies the checker and is unique within its bundle.
	CheckerID   string `xml:"checkerId,attr,omitempty"`
	Description string `xml:"description,attr,omitempty"`
	Summary     string `xml:"summary,attr,omitempty"`

	Params         []Param         `xml:"Param"`
	AddressedRules []AddressedRule `xml:"AddressedRule"`
	Issues         []*Issue        `xml:"Issue"`
	Metadata       []Metadata      `xml:"Metadata"`
}

// AddressedRule declares that a checker checks the rule with the given
// composite UID.
type AddressedRule struct {
	RuleUID string `xml:"ruleUID,attr,omitempty"`
}

// Metadata is an auxiliary key/value entry on a checker.
type Metadata struct {
	Key         string `xml:"key,attr,omitempty"`
	Value       string `xml:"value,attr,omitempty"`
	Description string `xml:"description,attr,omitempty"`
}

// Issue is a single finding of a checker. The issue ID is unique within the
// whole document; the rule UID must match one of the checker's addressed
// rules.
type Issue struct {
	Description string   `xml:"description,attr,omitempty"`
	IssueID     int      `xml:"issueId,attr"`
	Level       Severity `xml:"level,attr"`
	RuleUID     string   `xml:"ruleUID,attr,omitempty"`

	Locations          []Location            `xml:"Locations"`
	DomainSpecificInfo []*DomainSpecificInfo `xml:"DomainSpecificInfo"`
}

// Location points an issue at one or more places in the checked input. A
// location carries at least one concrete entry.
type Location struct {
	Description string `xml:"description,attr,omitempty"`

	FileLocations     []FileLocation     `xml:"FileLocation"`
	XMLLocations      []XMLLocation      `xml:"XMLLocation"`
	InertialLocations []InertialLocation `xml:"InertialLocation"`
	RoadLocations     []RoadLocation     `xml:"RoadLocation"`
}

// FileLocation is a line/column position in a text file. FileType optionally
// names the kind of file being referenced and is omitted when unset.
type FileLocation struct {
	Column   int    `xml:"column,attr"`
	Row      int    `xml:"row,attr"`
	FileType string `xml:"fileType,attr,omitempty"`
}

// XMLLocation is an XPath expression into an XML input.
type XMLLocation struct {
	XPath string `xml:"xpath,attr,omitempty"`
}

// InertialLocation is a point in inertial coordinates.
type InertialLocation struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	Z float64 `xml:"z,attr"`
}

// RoadLocation is a point in road curvilinear coordinates.
type RoadLocation struct {
	RoadID int     `xml:"roadId,attr"`
	T      float64 `xml:"t,attr"`
	S      float64 `xml:"s,attr"`
}

// AddressedRuleUIDs returns the composite UIDs of all rules the checker
// addresses, in registration order.
func (c *Checker) AddressedRuleUIDs() []string {
	uids := make([]string, 0, len(c.AddressedRules))
	for _, r := range c.AddressedRules {
		uids = append(uids, r.RuleUID)
	}
	return uids
}

// IssueCount returns the number of issues over all checkers of the bundle.
func (b *CheckerBundle) IssueCount() int {
	count := 0
	for _, c := range b.Checkers {
		count += len(c.Issues)
	}
	return count
}

// IssueCount returns the number of issues over all bundles.
func (r *CheckerResults) IssueCount() int {
	count := 0
	for _, b := range r.Bundles {
		count += b.IssueCount()
	}
	return count
}

// Validate checks the whole document: every bundle validates, bundle names
// are unique and issue IDs are unique across the document.
func (r *CheckerResults) Validate() error {
	names := make(map[string]struct{}, len(r.Bundles))
	issueIDs := make(map[int]struct{})
	for _, b := range r.Bundles {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, dup := names[b.Name]; dup {
			return newValidationError("checker results", "duplicate checker bundle name %q", b.Name)
		}
		names[b.Name] = struct{}{}
		for _, c := range b.Checkers {
			for _, issue := range c.Issues {
				if _, dup := issueIDs[issue.IssueID]; dup {
					return newValidationError("checker results", "duplicate issue id %d", issue.IssueID)
				}
				issueIDs[issue.IssueID] = struct{}{}
			}
		}
	}
	return nil
}

// Validate checks the bundle's own fields, its params and all checkers,
// including checker ID uniqueness within the bundle.
func (b *CheckerBundle) Validate() error {
	if b.Name == "" {
		return newValidationError("checker bundle", "name must not be empty")
	}
	entity := fmt.Sprintf("checker bundle %q", b.Name)
	for _, p := range b.Params {
		if err := p.Validate(); err != nil {
			return newValidationError(entity, "%v", err)
		}
	}
	ids := make(map[string]struct{}, len(b.Checkers))
	for _, c := range b.Checkers {
		if err := c.Validate(); err != nil {
			return newValidationError(entity, "%v", err)
		}
		if _, dup := ids[c.CheckerID]; dup {
			return newValidationError(entity, "duplicate checker id %q", c.CheckerID)
		}
		ids[c.CheckerID] = struct{}{}
	}
	return nil
}

// Validate checks the checker's own fields and its cross-entity rules:
// every issue must reference one of the addressed rules and a skipped
// checker cannot carry issues.
func (c *Checker) Validate() error {
	if c.CheckerID == "" {
		return newValidationError("checker", "checkerId must not be empty")
	}
	entity := fmt.Sprintf("checker %q", c.CheckerID)
	if c.Status != "" && !c.Status.IsValid() {
		return newValidationError(entity, "invalid status %q", string(c.Status))
	}
	for _, p := range c.Params {
		if err := p.Validate(); err != nil {
			return newValidationError(entity, "%v", err)
		}
	}
	for _, r := range c.AddressedRules {
		if _, err := rule.Parse(r.RuleUID); err != nil {
			return newValidationError(entity, "invalid addressed rule uid %q: %v", r.RuleUID, err)
		}
	}
	for _, m := range c.Metadata {
		if m.Key == "" {
			return newValidationError(entity, "metadata key must not be empty")
		}
	}
	addressed := c.AddressedRuleUIDs()
	for _, issue := range c.Issues {
		if err := issue.Validate(); err != nil {
			return newValidationError(entity, "%v", err)
		}
		if !slices.Contains(addressed, issue.RuleUID) {
			return newValidationError(entity, "issue rule uid %q does not match addressed rule uids %v", issue.RuleUID, addressed)
		}
	}
	if c.Status == StatusSkipped && len(c.Issues) > 0 {
		return newValidationError(entity, "checkers with skipped status cannot contain issues, %d issue(s) found", len(c.Issues))
	}
	return nil
}

// Validate checks the issue fields and all of its locations.
func (i *Issue) Validate() error {
	entity := fmt.Sprintf("issue %d", i.IssueID)
	if i.IssueID < 0 {
		return newValidationError(entity, "issueId must not be negative")
	}
	if !i.Level.IsValid() {
		return newValidationError(entity, "invalid severity level %d", int(i.Level))
	}
	for j := range i.Locations {
		if err := i.Locations[j].Validate(); err != nil {
			return newValidationError(entity, "%v", err)
		}
	}
	return nil
}

// Validate checks that the location carries at least one concrete entry and
// that XML locations have a non-empty xpath.
func (l *Location) Validate() error {
	if len(l.FileLocations)+len(l.XMLLocations)+len(l.InertialLocations)+len(l.RoadLocations) == 0 {
		return newValidationError("locations", "at least one location entry is required")
	}
	for _, x := range l.XMLLocations {
		if x.XPath == "" {
			return newValidationError("locations", "xml location xpath must not be empty")
		}
	}
	return nil
}
