// Package harness runs conformance scenarios against query definitions.
//
// A scenario pins down what a set of definitions must render to, so a
// change to a definition file (or to the builder) that alters the query an
// API receives is caught before it ships.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: orders
//	description: "Order filters sent to the orders API"
//	cases:
//	  - file: ../definitions/orders.yml   # relative to the scenario file
//	    assertions:
//	      - type: contains
//	        value: 'status=in=("OPEN","ON HOLD")'
//	      - type: max_length
//	        max: 2048
//	  - name: inline-adults
//	    definition:                       # or an inline definition
//	      name: adults
//	      expression:
//	        - compare: {selector: age, operator: greaterThanOrEqual, value: 18}
//	    assertions:
//	      - type: equals
//	        value: age=ge=18
//	  - file: ../definitions/unknown_operator.yaml
//	    assertions:
//	      - type: error
//	        value: E205
//
// # Assertion Types
//
//   - equals: the query is exactly value
//   - contains: the query contains value
//   - not_contains: the query does not contain value
//   - max_length: the query is at most max bytes long
//   - error: rendering fails with code value (a querydef E2xx code or an
//     rsql code such as UNKNOWN_OPERATOR)
//
// A case that fails to render without an error assertion fails.
//
// # Golden Snapshots
//
// Snapshot renders one "name<TAB>query" line per case (or
// "name<TAB>error=CODE"). RunWithGolden compares it against
// testdata/golden/<scenario>.golden through goldie; the CLI keeps its
// snapshots next to the scenario file, in golden/<file>.golden.
package harness
