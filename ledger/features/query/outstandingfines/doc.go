// Package outstandingfines implements the Outstanding Fines query use case.
//
// This feature returns the pending (unpaid) fines of a holder and their total
// in integer cents. It follows the Query-Project pattern without any command
// processing or event generation.
package outstandingfines
