// Package loanhistory implements the Loan History query use case.
//
// This feature returns every loan a holder ever had, open or closed, with
// return dates and derived statuses. It follows the Query-Project pattern
// without any command processing or event generation.
package loanhistory
