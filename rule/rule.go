// Package rule implements the rule identifier codec shared by configuration
// and result documents.
//
// Every rule a checker addresses is identified by a UID of the form
//
//	<emanating_entity>:<standard>:<definition_setting>:<rule_full_name>
//
// for example "asam.net:xodr:1.0.0:road.lane.link.zero_width". The four
// fields follow fixed patterns: the emanating entity is a dotted domain name
// with at least two segments, the standard is a single lowercase word, the
// definition setting is a dotted version number, and the rule full name is a
// dot-separated path of lowercase snake_case segments. A single segment such
// as "valid_schema" is a valid rule full name.
//
// UIDs are composed from their fields with Compose and recovered from their
// composite string form with Parse. Both directions validate every field and
// report the first mismatch as a *FieldError.
package rule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedUID reports a composite rule UID with fewer than four
// colon-separated segments.
var ErrMalformedUID = errors.New("invalid rule uid")

// Anchored patterns for the four UID fields.
var (
	emanatingEntityPattern   = regexp.MustCompile(`^\w+(\.\w+)+$`)
	standardPattern          = regexp.MustCompile(`^[a-z]+$`)
	definitionSettingPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)+$`)
	ruleFullNamePattern      = regexp.MustCompile(`^(([a-z][\w_]*)\.)*[a-z][\w_]*$`)
)

// FieldError reports a UID field whose value does not match the required
// pattern for that field.
type FieldError struct {
	// Field is the snake_case field name, e.g. "emanating_entity".
	Field string
	// Value is the rejected field value.
	Value string
	// Pattern is the anchored regular expression the value must match.
	Pattern string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("rule uid field %s: value %q does not match pattern %s", e.Field, e.Value, e.Pattern)
}

// UID identifies a single rule definition.
type UID struct {
	// EmanatingEntity is the domain name of the entity that defines the
	// rule, e.g. "asam.net".
	EmanatingEntity string
	// Standard is the lowercase short name of the standard the rule
	// belongs to, e.g. "xodr".
	Standard string
	// DefinitionSetting is the version of the standard in which the rule
	// was first defined, e.g. "1.0.0".
	DefinitionSetting string
	// RuleFullName is the dot-separated path of the rule inside the
	// standard, e.g. "road.lane.link.zero_width".
	RuleFullName string
}

// Compose builds a validated UID from its four fields.
func Compose(emanatingEntity, standard, definitionSetting, ruleFullName string) (UID, error) {
	uid := UID{
		EmanatingEntity:   emanatingEntity,
		Standard:          standard,
		DefinitionSetting: definitionSetting,
		RuleFullName:      ruleFullName,
	}
	if err := uid.Validate(); err != nil {
		return UID{}, err
	}
	return uid, nil
}

// Parse splits a composite identifier into its four fields and validates
// each of them. Separators beyond the third are folded into the rule full
// name.
func Parse(raw string) (UID, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 4 {
		return UID{}, fmt.Errorf("%w %q: want <emanating_entity>:<standard>:<definition_setting>:<rule_full_name>", ErrMalformedUID, raw)
	}
	uid := UID{
		EmanatingEntity:   parts[0],
		Standard:          parts[1],
		DefinitionSetting: parts[2],
		RuleFullName:      strings.Join(parts[3:], ":"),
	}
	if err := uid.Validate(); err != nil {
		return UID{}, err
	}
	return uid, nil
}

// Validate checks every field against its pattern and returns a *FieldError
// for the first mismatch.
func (u UID) Validate() error {
	checks := []struct {
		field string
		value string
		re    *regexp.Regexp
	}{
		{"emanating_entity", u.EmanatingEntity, emanatingEntityPattern},
		{"standard", u.Standard, standardPattern},
		{"definition_setting", u.DefinitionSetting, definitionSettingPattern},
		{"rule_full_name", u.RuleFullName, ruleFullNamePattern},
	}
	for _, c := range checks {
		if !c.re.MatchString(c.value) {
			return &FieldError{Field: c.field, Value: c.value, Pattern: c.re.String()}
		}
	}
	return nil
}

// String returns the colon-joined composite form of the UID.
func (u UID) String() string {
	return u.EmanatingEntity + ":" + u.Standard + ":" + u.DefinitionSetting + ":" + u.RuleFullName
}
