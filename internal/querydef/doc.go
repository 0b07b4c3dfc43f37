// Package querydef loads declarative RSQL query definitions and compiles
// them into rsql.Builder values.
//
// Definitions are YAML (.yaml, .yml) or CUE (.cue) files:
//
//	name: adults-named-john
//	default_operator: and
//	preset: extended
//	expression:
//	  - compare: {selector: name, operator: like, value: "Jo*"}
//	  - logic: and
//	  - group:
//	      - compare: {selector: age, operator: greaterThanOrEqual, value: 18}
//	      - logic: or
//	      - compare: {selector: guardian, operator: equal, value: true}
//
// compiles to:
//
//	name=like="Jo*";(age=ge=18,guardian==true)
//
// Each step maps onto one Builder call: compare (Comparison), logic
// (Logic), group (Group), concat (Concat) and merge (MergeWith). Nested
// steps are compiled into fresh builders sharing the definition's
// configuration.
//
// Errors carry the step path, e.g. expression[2].group[0].compare.
package querydef
