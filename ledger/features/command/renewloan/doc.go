// Package renewloan implements the Renew Loan command use case.
//
// Renewal extends a loan's due date by one loan period, up to the policy's
// renewal maximum. A loan that is already overdue, or whose holder has any
// pending fine, is not renewable.
package renewloan
