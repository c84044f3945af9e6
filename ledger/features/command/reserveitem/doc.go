// Package reserveitem implements the Reserve Item command use case.
//
// Reserving appends a holder to the FIFO waitlist of an item with zero
// availability. Holders of a free item are told to issue directly instead.
package reserveitem
