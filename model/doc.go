// Package model defines the document types for both XML dialects of the
// checker framework: the configuration dialect rooted at Config and the
// result dialect rooted at CheckerResults.
//
// The struct field order of every type pins the canonical attribute and
// child order of the written documents. Parsing is order-independent:
// elements may appear in any order in the input and unknown elements are
// ignored.
//
// Types marshal through Marshal and Unmarshal, which add the canonical
// document header and two-space indentation on the way out.
package model
