// Package currentloans implements the Current Loans query use case.
//
// This feature provides a pure query operation that returns the loans a holder
// currently has open, with the Overdue status derived at read time from the
// due date versus the query's as-of time. It follows the Query-Project pattern
// without any command processing or event generation.
package currentloans
