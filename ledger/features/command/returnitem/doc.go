// Package returnitem implements the Return Item command use case.
//
// Returning closes a loan and settles its consequences in one atomic append:
// the LoanReturned event, a FineAssessed event when the return is overdue, and
// a ReservationPromoted event for the queue head when holders are waiting. The
// promoted holder's copy is earmarked, so general availability does not grow.
package returnitem
