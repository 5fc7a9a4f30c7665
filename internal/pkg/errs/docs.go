// Package errs provides the shared error types of the ordering service.
//
// Every error type follows the same pattern: a sentinel variable (ErrValueIsRequired and
// friends), a struct carrying the details, constructors with and without a cause, and an
// Unwrap method returning the sentinel so callers can classify with errors.Is.
//
// Adapters map the sentinels to transport codes: ErrObjectNotFound becomes 404, the value
// errors become 400.
package errs
