package model

import "github.com/qc-framework/baselib/rawxml"

// DomainSpecificInfo carries tool-defined XML content attached to an issue.
// The content follows no schema and round-trips through load and write
// unchanged.
type DomainSpecificInfo struct {
	Name    string         `xml:"name,attr,omitempty"`
	Content []*rawxml.Node `xml:",any"`
}

// Clone returns a deep copy of the info block.
func (d *DomainSpecificInfo) Clone() *DomainSpecificInfo {
	if d == nil {
		return nil
	}
	out := &DomainSpecificInfo{Name: d.Name}
	for _, n := range d.Content {
		out.Content = append(out.Content, n.Clone())
	}
	return out
}
