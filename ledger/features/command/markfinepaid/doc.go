// Package markfinepaid implements the Mark Fine Paid command use case.
//
// Payment settles a pending fine in full; partial payments are not supported.
// Marking an already-paid fine is a no-op, so replayed requests are harmless.
package markfinepaid
