package model

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Severity grades how serious an issue is. Lower values are more severe;
// the integer value is what appears in level, minLevel and maxLevel
// attributes.
type Severity int

const (
	// SeverityError marks a violation of the checked standard.
	SeverityError Severity = 1
	// SeverityWarning marks a questionable construct that is not strictly
	// forbidden.
	SeverityWarning Severity = 2
	// SeverityInformation marks a neutral observation.
	SeverityInformation Severity = 3
)

// IsValid reports whether the severity is one of the defined levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInformation:
		return true
	default:
		return false
	}
}

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a name or numeric string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	if n, err := strconv.Atoi(s); err == nil {
		sev := Severity(n)
		if !sev.IsValid() {
			return 0, fmt.Errorf("invalid severity: %d", n)
		}
		return sev, nil
	}
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "information":
		return SeverityInformation, nil
	default:
		return 0, fmt.Errorf("invalid severity: %s", s)
	}
}

// AllSeverities returns the defined severities from most to least severe.
func AllSeverities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInformation}
}

// Status is the execution outcome of a checker. The empty string means the
// status has not been set yet.
type Status string

const (
	// StatusCompleted means the checker ran to completion.
	StatusCompleted Status = "completed"
	// StatusError means the checker aborted with an internal error.
	StatusError Status = "error"
	// StatusSkipped means the checker did not run, e.g. because a
	// precondition was not met.
	StatusSkipped Status = "skipped"
)

// IsValid reports whether the status is one of the defined outcomes. The
// unset status is not valid; callers that allow it check for "" first.
func (s Status) IsValid() bool {
	switch s {
	case StatusCompleted, StatusError, StatusSkipped:
		return true
	default:
		return false
	}
}

// String returns the wire form of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(s))
	if !st.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return st, nil
}

// AllStatuses returns the defined statuses.
func AllStatuses() []Status {
	return []Status{StatusCompleted, StatusError, StatusSkipped}
}

// Param is a name/value setting attached to a configuration or result
// scope. The value is one of string, int64 or float64.
type Param struct {
	Name  string
	Value any
}

// Validate checks the param name and value kind.
func (p Param) Validate() error {
	if p.Name == "" {
		return newValidationError("param", "name must not be empty")
	}
	if _, err := NormalizeParamValue(p.Value); err != nil {
		return newValidationError(fmt.Sprintf("param %q", p.Name), "%v", err)
	}
	return nil
}

// MarshalXML implements xml.Marshaler. Both attributes are always written,
// even when empty.
func (p Param) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if start.Name.Local == "" {
		start.Name.Local = "Param"
	}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "name"}, Value: p.Name},
		{Name: xml.Name{Local: "value"}, Value: FormatParamValue(p.Value)},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// UnmarshalXML implements xml.Unmarshaler. A missing value attribute reads
// as the empty string.
func (p *Param) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Value = ""
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			p.Name = a.Value
		case "value":
			p.Value = ParseParamValue(a.Value)
		}
	}
	return d.Skip()
}

// NormalizeParamValue coerces v to one of the three supported param value
// kinds: string, int64 or float64. Integer values of any width become
// int64, float32 becomes float64. Non-finite floats and any other type are
// rejected.
func NormalizeParamValue(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return nil, fmt.Errorf("param value %d overflows int64", t)
		}
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("param value %d overflows int64", t)
		}
		return int64(t), nil
	case float32:
		return float64(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("param value must be a finite number")
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported param value type %T (want string, integer or float)", v)
	}
}

// FormatParamValue renders a normalized param value the way it appears in a
// value attribute. Floats always keep a decimal marker so the value kind
// survives a round trip.
func FormatParamValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		s := strconv.FormatFloat(t, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ParseParamValue reads a value attribute back into the narrowest matching
// kind: int64 first, then float64, then string. Strings that spell
// non-finite floats stay strings.
func ParseParamValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// ValidationError reports a violated document invariant. Entity names the
// offending element, Reason the violated constraint.
type ValidationError struct {
	Entity string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

func newValidationError(entity, format string, args ...any) *ValidationError {
	return &ValidationError{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}
