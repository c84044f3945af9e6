// Package cancelreservation implements the Cancel Reservation command use case.
//
// Canceling withdraws a Waiting reservation from the queue without affecting
// the order of the remaining entries. Canceling a Promoted reservation
// releases its earmarked copy, which promotes the next waiting holder in the
// same atomic append. Fulfilled reservations cannot be canceled.
package cancelreservation
