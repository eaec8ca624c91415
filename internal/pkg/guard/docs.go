// Package guard provides ConstructorGuard, a zero-size-ish marker embedded in
// commands and queries so that values built without their constructor fail
// validation instead of silently carrying zero fields into a handler.
package guard
