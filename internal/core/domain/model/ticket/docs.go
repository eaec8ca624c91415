// Package ticket provides the support Ticket aggregate.
//
// Tickets are opened by business rules as side effects of order transitions and
// afterwards change only through UpdateStatus. They are never deleted.
package ticket
