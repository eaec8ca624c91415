// Package policies holds the concrete business rules of the order service and
// the default catalog registered at startup.
package policies
