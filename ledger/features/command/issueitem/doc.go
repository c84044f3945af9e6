// Package issueitem implements the Issue Item command use case.
//
// Issuing lends a free copy of an item to a holder, or lets a promoted
// reservation holder claim the copy earmarked for them. The due date is
// derived from the circulation policy's loan period.
package issueitem
