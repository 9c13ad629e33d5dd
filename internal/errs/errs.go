// Package errs defines the typed errors handlers return.
//
// Every request either succeeds or fails with an *HTTPError carrying one
// of three shapes: a validation failure (400, per-field messages), a
// not-found (404) or an internal error (500, cause kept for logs only).
// The global error handler turns that value into the JSON response.
package errs
