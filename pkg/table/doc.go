// Package table implements an immutable, column-typed, row-ordered table
// and the transformation verbs that operate on it: Filter, Arrange, Select,
// Mutate, Summarize, GroupBy/Ungroup, and Join.
//
// Every verb takes a table plus parameters and returns a new table; inputs
// are never modified. Verbs compose either by chaining method calls or
// through Pipe:
//
//	out, err := table.Pipe(t,
//	    table.Filtering(table.Ge(table.Col("age"), table.Lit(table.Number(65)))),
//	    table.Arranging(table.Desc("age")),
//	)
//
// Missing values are a distinct marker that never compares equal to
// anything, including another missing marker. Predicates evaluate under
// three-valued logic (see Tri); a row is kept by Filter only when every
// predicate is definitely true.
package table
