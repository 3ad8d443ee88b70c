package baselib

import (
	"fmt"
	"os"

	"github.com/qc-framework/baselib/model"
)

// Configuration holds the settings of a checker run and serializes them as
// a configuration document. A zero store holds no document; the first
// registration, SetGlobalParam or a Load initializes it.
//
// The configuration dialect is permissive: registrations do not check for
// duplicates and getters return nil instead of failing on unknown names.
//
// Configuration is not safe for concurrent use.
type Configuration struct {
	doc *model.Config
}

// NewConfiguration returns an empty configuration store.
func NewConfiguration() *Configuration {
	return &Configuration{}
}

// Load reads and validates a configuration document. It fails on a store
// that already holds data; use Reload to replace the content deliberately.
func (c *Configuration) Load(path string) error {
	const op = "Configuration.Load"
	if c.doc != nil {
		return NewStateError(op, fmt.Errorf("%w: use Reload to replace the loaded content", ErrAlreadyLoaded))
	}
	return c.load(op, path)
}

// Reload reads and validates a configuration document, replacing any
// content the store holds.
func (c *Configuration) Reload(path string) error {
	return c.load("Configuration.Reload", path)
}

func (c *Configuration) load(op, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewIOError(op, err)
	}
	doc, err := model.Unmarshal[model.Config](data)
	if err != nil {
		return NewSchemaError(op, err)
	}
	if err := doc.Validate(); err != nil {
		return NewSchemaError(op, err)
	}
	c.doc = doc
	return nil
}

// Write validates the configuration and writes it in canonical form.
func (c *Configuration) Write(path string) error {
	const op = "Configuration.Write"
	if c.doc == nil {
		return NewStateError(op, fmt.Errorf("%w: set a param or register an element first", ErrNotInitialized))
	}
	if err := c.doc.Validate(); err != nil {
		return NewSchemaError(op, err)
	}
	data, err := model.Marshal(c.doc)
	if err != nil {
		return NewSchemaError(op, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewIOError(op, err)
	}
	return nil
}

// RegisterCheckerBundle adds a checker bundle entry, initializing an empty
// store. Duplicate applications are allowed; the configuration dialect
// preserves them as written.
func (c *Configuration) RegisterCheckerBundle(application string) {
	c.ensureDoc()
	c.doc.Bundles = append(c.doc.Bundles, &model.ConfigCheckerBundle{Application: application})
}

// RegisterReportModule adds a report module entry, initializing an empty
// store.
func (c *Configuration) RegisterReportModule(application string) {
	c.ensureDoc()
	c.doc.ReportModules = append(c.doc.ReportModules, &model.ReportModule{Application: application})
}

// RegisterChecker adds a checker entry with its severity bounds to a
// registered bundle.
func (c *Configuration) RegisterChecker(application, checkerID string, minLevel, maxLevel model.Severity) error {
	const op = "Configuration.RegisterChecker"
	if !minLevel.IsValid() || !maxLevel.IsValid() {
		return NewSchemaError(op, fmt.Errorf("invalid severity range [min %d, max %d]", int(minLevel), int(maxLevel)))
	}
	bundle, err := c.bundle(op, application)
	if err != nil {
		return err
	}
	bundle.Checkers = append(bundle.Checkers, model.ConfigChecker{
		CheckerID: checkerID,
		MaxLevel:  maxLevel,
		MinLevel:  minLevel,
	})
	return nil
}

// SetGlobalParam adds a document-level param, initializing an empty store.
func (c *Configuration) SetGlobalParam(name string, value any) error {
	param, err := newParam("Configuration.SetGlobalParam", name, value)
	if err != nil {
		return err
	}
	c.ensureDoc()
	c.doc.Params = append(c.doc.Params, param)
	return nil
}

// SetCheckerBundleParam adds a param to a registered bundle.
func (c *Configuration) SetCheckerBundleParam(application, name string, value any) error {
	const op = "Configuration.SetCheckerBundleParam"
	param, err := newParam(op, name, value)
	if err != nil {
		return err
	}
	bundle, err := c.bundle(op, application)
	if err != nil {
		return err
	}
	bundle.Params = append(bundle.Params, param)
	return nil
}

// SetCheckerParam adds a param to a registered checker.
func (c *Configuration) SetCheckerParam(application, checkerID, name string, value any) error {
	const op = "Configuration.SetCheckerParam"
	param, err := newParam(op, name, value)
	if err != nil {
		return err
	}
	checker, err := c.checker(op, application, checkerID)
	if err != nil {
		return err
	}
	checker.Params = append(checker.Params, param)
	return nil
}

// SetReportModuleParam adds a param to a registered report module.
func (c *Configuration) SetReportModuleParam(application, name string, value any) error {
	const op = "Configuration.SetReportModuleParam"
	param, err := newParam(op, name, value)
	if err != nil {
		return err
	}
	module, err := c.reportModule(op, application)
	if err != nil {
		return err
	}
	module.Params = append(module.Params, param)
	return nil
}

// GlobalParam returns the value of a document-level param, or nil when the
// param does not exist.
func (c *Configuration) GlobalParam(name string) any {
	if c.doc == nil {
		return nil
	}
	return paramValue(c.doc.Params, name)
}

// GlobalParams returns all document-level params as a map. For repeated
// names the last value wins.
func (c *Configuration) GlobalParams() map[string]any {
	params := make(map[string]any)
	if c.doc == nil {
		return params
	}
	for _, p := range c.doc.Params {
		params[p.Name] = p.Value
	}
	return params
}

// CheckerBundleParam returns the value of a bundle param, or nil when the
// bundle or the param does not exist.
func (c *Configuration) CheckerBundleParam(application, name string) any {
	bundle := c.findBundle(application)
	if bundle == nil {
		return nil
	}
	return paramValue(bundle.Params, name)
}

// CheckerParam returns the value of a checker param, or nil when the
// bundle, the checker or the param does not exist.
func (c *Configuration) CheckerParam(application, checkerID, name string) any {
	bundle := c.findBundle(application)
	if bundle == nil {
		return nil
	}
	checker := bundle.Checker(checkerID)
	if checker == nil {
		return nil
	}
	return paramValue(checker.Params, name)
}

// ReportModuleParam returns the value of a report module param, or nil when
// the module or the param does not exist.
func (c *Configuration) ReportModuleParam(application, name string) any {
	module := c.findReportModule(application)
	if module == nil {
		return nil
	}
	return paramValue(module.Params, name)
}

// CheckerBundles returns all bundle entries in registration order. The
// returned pointers reference the live document.
func (c *Configuration) CheckerBundles() []*model.ConfigCheckerBundle {
	if c.doc == nil {
		return nil
	}
	return append([]*model.ConfigCheckerBundle(nil), c.doc.Bundles...)
}

// ReportModules returns all report module entries in registration order.
func (c *Configuration) ReportModules() []*model.ReportModule {
	if c.doc == nil {
		return nil
	}
	return append([]*model.ReportModule(nil), c.doc.ReportModules...)
}

// CheckerBundle returns the first bundle entry with the given application
// name, or nil.
func (c *Configuration) CheckerBundle(application string) *model.ConfigCheckerBundle {
	return c.findBundle(application)
}

// BundleCheckerIDs returns the checker IDs of a bundle entry, or nil when
// the bundle does not exist.
func (c *Configuration) BundleCheckerIDs(application string) []string {
	bundle := c.findBundle(application)
	if bundle == nil {
		return nil
	}
	ids := make([]string, 0, len(bundle.Checkers))
	for _, checker := range bundle.Checkers {
		ids = append(ids, checker.CheckerID)
	}
	return ids
}

func (c *Configuration) ensureDoc() {
	if c.doc == nil {
		c.doc = &model.Config{}
	}
}

func (c *Configuration) bundle(op, application string) (*model.ConfigCheckerBundle, error) {
	if c.doc == nil {
		return nil, NewStateError(op, fmt.Errorf("%w: the configuration is empty, register an element first", ErrNotInitialized))
	}
	bundle := c.findBundle(application)
	if bundle == nil {
		return nil, NewNotFoundError(op, fmt.Errorf("%w: checker bundle %q does not exist on the configuration, register the checker bundle first", ErrBundleNotFound, application))
	}
	return bundle, nil
}

func (c *Configuration) checker(op, application, checkerID string) (*model.ConfigChecker, error) {
	bundle, err := c.bundle(op, application)
	if err != nil {
		return nil, err
	}
	checker := bundle.Checker(checkerID)
	if checker == nil {
		return nil, NewNotFoundError(op, fmt.Errorf("%w: checker %q does not exist on bundle %q, register the checker first", ErrCheckerNotFound, checkerID, application))
	}
	return checker, nil
}

func (c *Configuration) reportModule(op, application string) (*model.ReportModule, error) {
	if c.doc == nil {
		return nil, NewStateError(op, fmt.Errorf("%w: the configuration is empty, register an element first", ErrNotInitialized))
	}
	module := c.findReportModule(application)
	if module == nil {
		return nil, NewNotFoundError(op, fmt.Errorf("%w: report module %q does not exist on the configuration, register the report module first", ErrReportModuleNotFound, application))
	}
	return module, nil
}

func (c *Configuration) findBundle(application string) *model.ConfigCheckerBundle {
	if c.doc == nil {
		return nil
	}
	for _, bundle := range c.doc.Bundles {
		if bundle.Application == application {
			return bundle
		}
	}
	return nil
}

func (c *Configuration) findReportModule(application string) *model.ReportModule {
	if c.doc == nil {
		return nil
	}
	for _, module := range c.doc.ReportModules {
		if module.Application == application {
			return module
		}
	}
	return nil
}

// paramValue returns the value of the named param, or nil.
func paramValue(params []model.Param, name string) any {
	for _, p := range params {
		if p.Name == name {
			return p.Value
		}
	}
	return nil
}
