package model

import (
	"encoding/xml"
	"fmt"
)

// Config is the root of the configuration dialect. Configuration documents
// select checker bundles and report modules for a run and parameterize
// them.
//
// Unlike the result dialect, the configuration dialect always writes
// attributes, even when their value is empty.
type Config struct {
	XMLName xml.Name `xml:"Config"`

	Params        []Param                `xml:"Param"`
	ReportModules []*ReportModule        `xml:"ReportModule"`
	Bundles       []*ConfigCheckerBundle `xml:"CheckerBundle"`
}

// ConfigCheckerBundle selects one checker application and carries its
// params and per-checker settings.
type ConfigCheckerBundle struct {
	// Application is the name of the checker bundle executable.
	Application string `xml:"application,attr"`

	Params   []Param         `xml:"Param"`
	Checkers []ConfigChecker `xml:"Checker"`
}

// ConfigChecker enables one checker and bounds the severity of the issues
// it should report.
type ConfigChecker struct {
	CheckerID string   `xml:"checkerId,attr"`
	MaxLevel  Severity `xml:"maxLevel,attr"`
	MinLevel  Severity `xml:"minLevel,attr"`

	Params []Param `xml:"Param"`
}

// ReportModule selects one report application and carries its params.
type ReportModule struct {
	Application string `xml:"application,attr"`

	Params []Param `xml:"Param"`
}

// Checker returns the checker with the given ID, or nil.
func (b *ConfigCheckerBundle) Checker(checkerID string) *ConfigChecker {
	for i := range b.Checkers {
		if b.Checkers[i].CheckerID == checkerID {
			return &b.Checkers[i]
		}
	}
	return nil
}

// Validate checks that the configuration holds at least one element and
// that all params are well formed. The configuration dialect is otherwise
// permissive: duplicate applications and empty identifiers are preserved
// as written.
func (c *Config) Validate() error {
	if len(c.Params)+len(c.ReportModules)+len(c.Bundles) == 0 {
		return newValidationError("config", "at least one param, report module or checker bundle is required")
	}
	for _, p := range c.Params {
		if err := p.Validate(); err != nil {
			return newValidationError("config", "%v", err)
		}
	}
	for _, m := range c.ReportModules {
		entity := fmt.Sprintf("report module %q", m.Application)
		for _, p := range m.Params {
			if err := p.Validate(); err != nil {
				return newValidationError(entity, "%v", err)
			}
		}
	}
	for _, b := range c.Bundles {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the bundle holds at least one param or checker and
// that all params are well formed.
func (b *ConfigCheckerBundle) Validate() error {
	entity := fmt.Sprintf("checker bundle %q", b.Application)
	if len(b.Params)+len(b.Checkers) == 0 {
		return newValidationError(entity, "at least one param or checker is required")
	}
	for _, p := range b.Params {
		if err := p.Validate(); err != nil {
			return newValidationError(entity, "%v", err)
		}
	}
	for _, c := range b.Checkers {
		for _, p := range c.Params {
			if err := p.Validate(); err != nil {
				return newValidationError(fmt.Sprintf("checker %q", c.CheckerID), "%v", err)
			}
		}
	}
	return nil
}
