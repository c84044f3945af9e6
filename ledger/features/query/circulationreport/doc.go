// Package circulationreport implements the Circulation Report query use case.
//
// This feature aggregates circulation activity over a time window: issues,
// returns, renewals, reservations and fine totals. It scans all event types
// in the window and tolerates eventually consistent reads, making it suitable
// for replica-backed reporting. It follows the Query-Project pattern without
// any command processing or event generation.
package circulationreport
