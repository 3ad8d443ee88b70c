package baselib

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/qc-framework/baselib/manifest"
	"github.com/qc-framework/baselib/model"
	"github.com/qc-framework/baselib/rawxml"
	"github.com/qc-framework/baselib/rule"
)

const (
	// DefaultResultVersion is the document version stamped on result
	// documents created through registration.
	DefaultResultVersion = "0.0.1"

	// ReportFileExtension is the conventional file extension of result
	// documents, without the leading dot.
	ReportFileExtension = "xqar"
)

// Result accumulates the output of checker bundle runs and serializes it as
// a result document. A zero store holds no document; the first registration
// or a Load initializes it.
//
// Issue IDs are allocated by a per-store counter that starts at 0 and never
// goes backwards. An ID consumed by a failed registration is not reclaimed.
//
// Result is not safe for concurrent use.
type Result struct {
	doc   *model.CheckerResults
	ids   idManager
	log   *slog.Logger
	clock func() time.Time
}

// NewResult returns an empty result store.
func NewResult(opts ...ResultOption) *Result {
	r := &Result{
		log:   slog.Default(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads and validates a result document. It fails on a store that
// already holds data; use Reload to replace the content deliberately.
func (r *Result) Load(path string) error {
	const op = "Result.Load"
	if r.doc != nil {
		return NewStateError(op, fmt.Errorf("%w: use Reload to replace the loaded content", ErrAlreadyLoaded))
	}
	return r.load(op, path)
}

// Reload reads and validates a result document, replacing any content the
// store holds. The issue ID counter keeps its high-water mark.
func (r *Result) Reload(path string) error {
	return r.load("Result.Reload", path)
}

func (r *Result) load(op, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewIOError(op, err)
	}
	doc, err := model.Unmarshal[model.CheckerResults](data)
	if err != nil {
		return NewSchemaError(op, err)
	}
	if err := doc.Validate(); err != nil {
		return NewSchemaError(op, err)
	}
	r.doc = doc
	for _, b := range doc.Bundles {
		for _, c := range b.Checkers {
			for _, issue := range c.Issues {
				r.ids.seed(issue.IssueID)
			}
		}
	}
	r.log.Debug("result loaded", "path", path, "bundles", len(doc.Bundles), "issues", doc.IssueCount())
	return nil
}

// Write validates the document and writes it in canonical form. With
// WithGeneratedSummary, issue and status tallies are appended to every
// checker and bundle summary first.
func (r *Result) Write(path string, opts ...WriteOption) error {
	const op = "Result.Write"
	if r.doc == nil {
		return NewStateError(op, fmt.Errorf("%w: load a document or register a checker bundle first", ErrNotInitialized))
	}
	var cfg writeOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.generateSummary {
		r.generateSummaries()
	}
	if err := r.doc.Validate(); err != nil {
		return NewSchemaError(op, err)
	}
	data, err := model.Marshal(r.doc)
	if err != nil {
		return NewSchemaError(op, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewIOError(op, err)
	}
	r.log.Debug("result written", "path", path, "bundles", len(r.doc.Bundles), "issues", r.doc.IssueCount())
	return nil
}

// Version returns the document version, or the empty string when the store
// holds no document.
func (r *Result) Version() string {
	if r.doc == nil {
		return ""
	}
	return r.doc.Version
}

// SetVersion sets the document version, initializing an empty store.
func (r *Result) SetVersion(version string) {
	if r.doc == nil {
		r.doc = &model.CheckerResults{Version: version}
		return
	}
	r.doc.Version = version
}

// RegisterCheckerBundle adds a checker bundle to the document. The name
// must be unique within the document. Without WithBuildDate the bundle is
// stamped with the current date.
func (r *Result) RegisterCheckerBundle(name, version, description string, opts ...BundleOption) error {
	const op = "Result.RegisterCheckerBundle"
	var cfg bundleOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	if r.doc == nil {
		r.doc = &model.CheckerResults{Version: DefaultResultVersion}
	}
	for _, b := range r.doc.Bundles {
		if b.Name == name {
			return NewDuplicateError(op, fmt.Errorf("%w: checker bundle with name %q is already registered to results", ErrAlreadyRegistered, name))
		}
	}
	buildDate := cfg.buildDate
	if !cfg.buildDateSet {
		buildDate = r.clock().Format("2006-01-02")
	}
	bundle := &model.CheckerBundle{
		BuildDate:   buildDate,
		Description: description,
		Name:        name,
		Version:     version,
		Summary:     cfg.summary,
	}
	if err := bundle.Validate(); err != nil {
		return NewSchemaError(op, err)
	}
	r.doc.Bundles = append(r.doc.Bundles, bundle)
	return nil
}

// RegisterChecker adds a checker to a registered bundle. The checker ID
// must be unique within the bundle.
func (r *Result) RegisterChecker(bundleName, checkerID, description string, opts ...CheckerOption) error {
	const op = "Result.RegisterChecker"
	var cfg checkerOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	bundle, err := r.bundle(op, bundleName)
	if err != nil {
		return err
	}
	if findChecker(bundle, checkerID) != nil {
		return NewDuplicateError(op, fmt.Errorf("%w: checker with id %q is already registered to bundle %q", ErrAlreadyRegistered, checkerID, bundleName))
	}
	checker := &model.Checker{
		CheckerID:   checkerID,
		Description: description,
		Summary:     cfg.summary,
	}
	if err := checker.Validate(); err != nil {
		return NewSchemaError(op, err)
	}
	bundle.Checkers = append(bundle.Checkers, checker)
	return nil
}

// RegisterCheckerBundleFromManifest registers the bundle a manifest
// describes together with all of its checkers and their addressed rules.
func (r *Result) RegisterCheckerBundleFromManifest(m *manifest.Manifest, opts ...BundleOption) error {
	const op = "Result.RegisterCheckerBundleFromManifest"
	if m == nil {
		return NewSchemaError(op, fmt.Errorf("manifest must not be nil"))
	}
	if m.Summary != "" {
		opts = append([]BundleOption{WithBundleSummary(m.Summary)}, opts...)
	}
	if err := r.RegisterCheckerBundle(m.Name, m.Version, m.Description, opts...); err != nil {
		return err
	}
	for _, c := range m.Checkers {
		if err := r.RegisterChecker(m.Name, c.ID, c.Description); err != nil {
			return err
		}
		for _, uid := range c.RuleUIDs {
			if err := r.RegisterRuleByUID(m.Name, c.ID, uid); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterRule composes a rule UID from its four fields, validates it and
// adds it to the checker's addressed rules. It returns the composite UID.
func (r *Result) RegisterRule(bundleName, checkerID, emanatingEntity, standard, definitionSetting, ruleFullName string) (string, error) {
	const op = "Result.RegisterRule"
	uid, err := rule.Compose(emanatingEntity, standard, definitionSetting, ruleFullName)
	if err != nil {
		return "", NewSchemaError(op, err)
	}
	return r.addRule(op, bundleName, checkerID, uid)
}

// RegisterRuleByUID parses a composite rule UID, validates it and adds it
// to the checker's addressed rules.
func (r *Result) RegisterRuleByUID(bundleName, checkerID, ruleUID string) error {
	const op = "Result.RegisterRuleByUID"
	uid, err := rule.Parse(ruleUID)
	if err != nil {
		return NewSchemaError(op, err)
	}
	_, err = r.addRule(op, bundleName, checkerID, uid)
	return err
}

func (r *Result) addRule(op, bundleName, checkerID string, uid rule.UID) (string, error) {
	checker, err := r.checker(op, bundleName, checkerID)
	if err != nil {
		return "", err
	}
	checker.AddressedRules = append(checker.AddressedRules, model.AddressedRule{RuleUID: uid.String()})
	if len(checker.AddressedRules) > 1 {
		r.log.Warn("checker addresses more than one rule",
			"bundle", bundleName,
			"checker", checkerID,
			"rules", len(checker.AddressedRules))
	}
	return uid.String(), nil
}

// RegisterIssue adds an issue to a checker and returns its document-wide
// unique ID. The rule UID must match one of the checker's addressed rules.
//
// The ID is consumed even when registration fails, and a failed
// registration is not rolled back: the invalid issue stays in the document
// and surfaces again when the document is validated.
func (r *Result) RegisterIssue(bundleName, checkerID, description string, level model.Severity, ruleUID string) (int, error) {
	const op = "Result.RegisterIssue"
	issueID := r.ids.nextID()
	checker, err := r.checker(op, bundleName, checkerID)
	if err != nil {
		return 0, err
	}
	checker.Issues = append(checker.Issues, &model.Issue{
		Description: description,
		IssueID:     issueID,
		Level:       level,
		RuleUID:     ruleUID,
	})
	if err := checker.Validate(); err != nil {
		return 0, NewSchemaError(op, err)
	}
	return issueID, nil
}

// SetCheckerStatus sets the execution outcome of a checker. The assignment
// is validated first and reverted when it violates a document invariant,
// e.g. marking a checker with issues as skipped.
func (r *Result) SetCheckerStatus(bundleName, checkerID string, status model.Status) error {
	const op = "Result.SetCheckerStatus"
	if !status.IsValid() {
		return NewSchemaError(op, fmt.Errorf("invalid status %q", string(status)))
	}
	checker, err := r.checker(op, bundleName, checkerID)
	if err != nil {
		return err
	}
	prev := checker.Status
	checker.Status = status
	if err := checker.Validate(); err != nil {
		checker.Status = prev
		return NewSchemaError(op, err)
	}
	return nil
}

// AddFileLocation attaches a row/column file position to an issue.
func (r *Result) AddFileLocation(bundleName, checkerID string, issueID, row, column int, description string) error {
	return r.addLocation("Result.AddFileLocation", bundleName, checkerID, issueID, model.Location{
		Description:   description,
		FileLocations: []model.FileLocation{{Column: column, Row: row}},
	})
}

// AddXMLLocation attaches one or more XPath expressions to an issue. At
// least one xpath is required and none may be empty.
func (r *Result) AddXMLLocation(bundleName, checkerID string, issueID int, description string, xpaths ...string) error {
	loc := model.Location{Description: description}
	for _, xpath := range xpaths {
		loc.XMLLocations = append(loc.XMLLocations, model.XMLLocation{XPath: xpath})
	}
	return r.addLocation("Result.AddXMLLocation", bundleName, checkerID, issueID, loc)
}

// AddInertialLocation attaches an inertial coordinate position to an issue.
func (r *Result) AddInertialLocation(bundleName, checkerID string, issueID int, x, y, z float64, description string) error {
	return r.addLocation("Result.AddInertialLocation", bundleName, checkerID, issueID, model.Location{
		Description:       description,
		InertialLocations: []model.InertialLocation{{X: x, Y: y, Z: z}},
	})
}

// AddRoadLocation attaches a road curvilinear position to an issue.
func (r *Result) AddRoadLocation(bundleName, checkerID string, issueID, roadID int, s, t float64, description string) error {
	return r.addLocation("Result.AddRoadLocation", bundleName, checkerID, issueID, model.Location{
		Description:   description,
		RoadLocations: []model.RoadLocation{{RoadID: roadID, T: t, S: s}},
	})
}

func (r *Result) addLocation(op, bundleName, checkerID string, issueID int, loc model.Location) error {
	issue, err := r.issue(op, bundleName, checkerID, issueID)
	if err != nil {
		return err
	}
	if err := loc.Validate(); err != nil {
		return NewSchemaError(op, err)
	}
	issue.Locations = append(issue.Locations, loc)
	return nil
}

// AddDomainSpecificInfo attaches a named block of schema-opaque XML to an
// issue. The nodes are deep-copied, so later changes to them do not affect
// the document.
func (r *Result) AddDomainSpecificInfo(bundleName, checkerID string, issueID int, name string, nodes ...*rawxml.Node) error {
	const op = "Result.AddDomainSpecificInfo"
	issue, err := r.issue(op, bundleName, checkerID, issueID)
	if err != nil {
		return err
	}
	if name == "" {
		return NewSchemaError(op, fmt.Errorf("domain specific info name must not be empty"))
	}
	info := &model.DomainSpecificInfo{Name: name}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		info.Content = append(info.Content, n.Clone())
	}
	issue.DomainSpecificInfo = append(issue.DomainSpecificInfo, info)
	return nil
}

// AddParamToCheckerBundle adds a named param to a bundle. Param names are
// unique within their scope.
func (r *Result) AddParamToCheckerBundle(bundleName, name string, value any) error {
	const op = "Result.AddParamToCheckerBundle"
	bundle, err := r.bundle(op, bundleName)
	if err != nil {
		return err
	}
	for _, p := range bundle.Params {
		if p.Name == name {
			return NewDuplicateError(op, fmt.Errorf("%w: param with name %q is already registered to bundle %q", ErrAlreadyRegistered, name, bundleName))
		}
	}
	param, err := newParam(op, name, value)
	if err != nil {
		return err
	}
	bundle.Params = append(bundle.Params, param)
	return nil
}

// AddParamToChecker adds a named param to a checker. Param names are unique
// within their scope.
func (r *Result) AddParamToChecker(bundleName, checkerID, name string, value any) error {
	const op = "Result.AddParamToChecker"
	checker, err := r.checker(op, bundleName, checkerID)
	if err != nil {
		return err
	}
	for _, p := range checker.Params {
		if p.Name == name {
			return NewDuplicateError(op, fmt.Errorf("%w: param with name %q is already registered to checker %q on bundle %q", ErrAlreadyRegistered, name, checkerID, bundleName))
		}
	}
	param, err := newParam(op, name, value)
	if err != nil {
		return err
	}
	checker.Params = append(checker.Params, param)
	return nil
}

// AddCheckerBundleSummary appends text to the bundle summary. Existing text
// is kept; the pieces are joined with a space.
func (r *Result) AddCheckerBundleSummary(bundleName, content string) error {
	bundle, err := r.bundle("Result.AddCheckerBundleSummary", bundleName)
	if err != nil {
		return err
	}
	bundle.Summary = appendSummary(bundle.Summary, content)
	return nil
}

// AddCheckerSummary appends text to the checker summary. Existing text is
// kept; the pieces are joined with a space.
func (r *Result) AddCheckerSummary(bundleName, checkerID, content string) error {
	checker, err := r.checker("Result.AddCheckerSummary", bundleName, checkerID)
	if err != nil {
		return err
	}
	checker.Summary = appendSummary(checker.Summary, content)
	return nil
}

// CopyParamsFromConfig copies configuration params onto the matching result
// entities: global params onto every bundle, bundle params onto the bundle
// with the same name and checker params onto the matching checker.
// Configuration entries without a counterpart in the result are skipped.
// The copy bypasses the duplicate-name check, so repeated names are
// possible afterwards.
func (r *Result) CopyParamsFromConfig(cfg *Configuration) error {
	const op = "Result.CopyParamsFromConfig"
	if r.doc == nil {
		return NewStateError(op, fmt.Errorf("%w: register result content before copying configuration params", ErrNotInitialized))
	}
	if cfg == nil || cfg.doc == nil {
		return nil
	}
	for _, bundle := range r.doc.Bundles {
		bundle.Params = append(bundle.Params, cfg.doc.Params...)
		cfgBundle := cfg.findBundle(bundle.Name)
		if cfgBundle == nil {
			continue
		}
		bundle.Params = append(bundle.Params, cfgBundle.Params...)
		for _, checker := range bundle.Checkers {
			cfgChecker := cfgBundle.Checker(checker.CheckerID)
			if cfgChecker == nil {
				continue
			}
			checker.Params = append(checker.Params, cfgChecker.Params...)
		}
	}
	return nil
}

// newParam normalizes and validates a param value.
func newParam(op, name string, value any) (model.Param, error) {
	normalized, err := model.NormalizeParamValue(value)
	if err != nil {
		return model.Param{}, NewSchemaError(op, err)
	}
	param := model.Param{Name: name, Value: normalized}
	if err := param.Validate(); err != nil {
		return model.Param{}, NewSchemaError(op, err)
	}
	return param, nil
}

// bundle resolves a bundle by name. The returned pointer is valid until the
// bundle list changes.
func (r *Result) bundle(op, name string) (*model.CheckerBundle, error) {
	if r.doc == nil {
		return nil, NewStateError(op, fmt.Errorf("%w: no checker bundle is registered yet", ErrNotInitialized))
	}
	for _, b := range r.doc.Bundles {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, NewNotFoundError(op, fmt.Errorf("%w: checker bundle %q does not exist on the result, register the bundle first", ErrBundleNotFound, name))
}

func (r *Result) checker(op, bundleName, checkerID string) (*model.Checker, error) {
	bundle, err := r.bundle(op, bundleName)
	if err != nil {
		return nil, err
	}
	checker := findChecker(bundle, checkerID)
	if checker == nil {
		return nil, NewNotFoundError(op, fmt.Errorf("%w: checker %q does not exist on bundle %q, register the checker first", ErrCheckerNotFound, checkerID, bundleName))
	}
	return checker, nil
}

func (r *Result) issue(op, bundleName, checkerID string, issueID int) (*model.Issue, error) {
	checker, err := r.checker(op, bundleName, checkerID)
	if err != nil {
		return nil, err
	}
	for _, issue := range checker.Issues {
		if issue.IssueID == issueID {
			return issue, nil
		}
	}
	return nil, NewNotFoundError(op, fmt.Errorf("%w: issue %d does not exist on checker %q", ErrIssueNotFound, issueID, checkerID))
}

func findChecker(bundle *model.CheckerBundle, checkerID string) *model.Checker {
	for _, c := range bundle.Checkers {
		if c.CheckerID == checkerID {
			return c
		}
	}
	return nil
}
