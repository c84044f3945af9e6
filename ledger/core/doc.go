// Package core contains the pure domain of the circulation ledger: the domain
// events that are the stored truth, the circulation policy (loan period,
// renewal limit, fine arithmetic), derived loan status, decision results, and
// the error taxonomy.
//
// Nothing in this package performs I/O. Decide functions in the feature
// packages combine these building blocks into business decisions over a
// projected event history.
package core
