// Package rsql builds RSQL (RESTful Query Language) filter expressions.
//
// A Builder accumulates comparisons joined by logical operators into a
// text buffer. It is not a parser and it never re-reads what it wrote:
// composition (Group, Concat, Merge) is purely textual.
//
// GRAMMAR:
//
//	expression := comparison | expression logicOp expression | '(' expression ')'
//	logicOp    := ';' | ','
//	comparison := selector comparisonLiteral literal
//
// AND renders as ';' and OR as ','.
//
// OPERATOR PLACEMENT:
//
// The Builder tracks whether its buffer is empty, ends with a comparison,
// or ends with a logical operator:
//   - A comparison following a comparison gets the default operator first.
//   - Consecutive logical operators collapse: the last one wins.
//   - Group, Concat and Merge insert the default operator only when the
//     buffer does not already end with one.
//
// Example:
//
//	q := rsql.New().
//	    Equal("name", "John").
//	    And().
//	    In("age", []int{30, 31})
//	q.String() // name=="John";age=in=(30,31)
//
// VALUES:
//
// Comparison values are accepted as native Go values and converted with
// ValueOf into the sealed Value set (String, Number, Bool, Date, Null,
// Array). Strings are double-quoted and the RSQL reserved characters
// '(', ')', ';' and ',' are backslash-escaped. Dates render as UTC
// ISO-8601 with millisecond precision.
//
// ERRORS:
//
// A failing call records its error on the Builder and every later mutation
// becomes a no-op until Reset. Anything written before the failure stays in
// the buffer. Use Build or Err to observe the error.
//
// CONCURRENCY:
//
// A Builder is not safe for concurrent mutation. Use one Builder per query
// under construction.
package rsql
