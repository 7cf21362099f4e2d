// Package value owns the bound values that travel alongside compiled SQL.
//
// Every value handed to a query or condition is normalized once, at
// construction, into an internally owned driver value: integers become
// int64, floats become float64, byte slices are copied, driver.Valuer
// implementations are resolved. After normalization a value can no longer
// be changed by the caller that supplied it.
//
// Normalized values have a canonical tagged encoding. Equality of bound
// values and the content hash of a compiled statement are both defined on
// that encoding, so two values are equal exactly when a database driver
// would receive the same thing.
//
// This package imports nothing internal.
package value
