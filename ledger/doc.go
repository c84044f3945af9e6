// Package ledger wires the circulation features into one service facade.
//
// CirculationService composes the command handlers, the query handlers and
// the promotion notifier on top of a single event store. Batch return and
// renew operations are orchestrated here: one independent transaction per
// loan, in ascending loan-id order, with partial success reported per loan.
package ledger
