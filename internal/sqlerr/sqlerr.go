// Package sqlerr translates PostgreSQL driver errors into API errors.
//
// Constraint violations and bad input become 400s with a stable code such
// as "IMAGE_NOT_FOUND"; a missing row becomes a 404; anything
// else is an internal error whose cause is only logged.
package sqlerr
