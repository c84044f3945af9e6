// Package itemavailability implements the Item Availability query use case.
//
// This feature reports how many copies of an item can be issued right now,
// accounting for active loans and unclaimed promotion earmarks, together with
// the reservation queue length and the earliest due date when nothing is
// available. It follows the Query-Project pattern without any command
// processing or event generation.
package itemavailability
