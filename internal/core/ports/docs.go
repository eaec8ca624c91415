// Package ports defines the contracts between the order domain and the
// infrastructure: repositories, the event log, the unit of work and the outbound
// event publisher. Adapters under internal/adapters/out implement them.
package ports
