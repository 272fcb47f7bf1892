// Package errs provides the typed errors shared by the order pipeline.
//
// Every error type follows the same pattern:
//   - a sentinel variable (e.g. ErrValueIsRequired) returned by Unwrap
//   - a struct carrying the parameter name and an optional cause
//   - constructors with and without cause
//
// Validation kinds (required, invalid, out of range) are detected before any
// write happens; IsValidation groups them for adapters that map errors to
// transport status codes. ObjectNotFound covers both "does not exist" and
// "exists but belongs to another customer" so callers cannot learn who owns an order.
package errs
