// Package kernel provides the shared domain primitives of the order management
// service. Today that is UUID, the identifier used by the order and ticket
// aggregates and by the order event log.
//
// Primitives in this package are immutable values that validate themselves, so
// aggregates can reject zero values coming from persistence or transport.
package kernel
