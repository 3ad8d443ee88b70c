// Package baselib provides the document layer shared by the tools of a
// quality checking pipeline.
//
// Checker bundles read a configuration document that selects and
// parameterizes them, run their checks and write their findings to a result
// document. Report modules then read those results and render them for
// users. Both document formats are XML; configurations conventionally use
// the .xml extension, results the .xqar extension.
//
// # Core Concepts
//
// The library is organized around a small set of entities:
//
//   - Checker bundles: one result section per checker application, with
//     params, a summary and a build date
//   - Checkers: individual checks inside a bundle, each with addressed
//     rules, issues and an execution status
//   - Rules: colon-separated UIDs identifying what a checker checks,
//     e.g. "asam.net:xodr:1.0.0:road.lane.link.zero_width"
//   - Issues: findings with a severity, a rule reference, locations in the
//     checked input and optional tool-defined XML payloads
//   - Params: typed name/value settings carried on most scopes
//
// # Architecture
//
// The package splits into a store layer and a document layer:
//
//   - Result and Configuration: stateful stores with registration, query
//     and file lifecycle operations
//   - model: the typed documents of both dialects and their canonical XML
//     codec
//   - rule: the rule UID codec
//   - rawxml: the generic tree for schema-opaque payloads
//   - manifest: YAML descriptions of the checkers a bundle provides
//
// # Writing Results
//
// A checker bundle builds its result bottom-up and writes it once:
//
//	result := baselib.NewResult()
//	if err := result.RegisterCheckerBundle("DemoBundle", "1.0.0", "Demo bundle"); err != nil {
//		log.Fatal(err)
//	}
//	if err := result.RegisterChecker("DemoBundle", "demoChecker", "Checks demo rules"); err != nil {
//		log.Fatal(err)
//	}
//	uid, err := result.RegisterRule("DemoBundle", "demoChecker", "asam.net", "xodr", "1.0.0", "valid_schema")
//	if err != nil {
//		log.Fatal(err)
//	}
//	issueID, err := result.RegisterIssue("DemoBundle", "demoChecker", "schema violation", model.SeverityError, uid)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = result.AddFileLocation("DemoBundle", "demoChecker", issueID, 12, 4, "line with the violation")
//	_ = result.SetCheckerStatus("DemoBundle", "demoChecker", model.StatusCompleted)
//	if err := result.Write("output.xqar", baselib.WithGeneratedSummary()); err != nil {
//		log.Fatal(err)
//	}
//
// # Reading Configurations
//
// A checker bundle reads the run configuration the framework hands to it:
//
//	config := baselib.NewConfiguration()
//	if err := config.Load("config.xml"); err != nil {
//		log.Fatal(err)
//	}
//	inputFile := config.CheckerBundleParam("DemoBundle", "InputFile")
//
// Configuration getters return nil for unknown names, so callers decide
// how to treat missing settings.
//
// # Error Handling
//
// Operations return *StoreError values that carry the operation name and a
// kind from the failure taxonomy (state, not_found, duplicate, schema, io)
// and wrap sentinel errors such as ErrBundleNotFound for errors.Is
// matching.
//
// Failed registrations are not rolled back: an issue ID consumed by a
// failed RegisterIssue stays consumed and the invalid issue stays in the
// document, where validation reports it again on Write.
package baselib
