// Package validation binds and validates request data.
//
// Request types declare their schema with `validate` struct tags and
// expose Validate(), which returns a typed errs.ValidationErrors keyed by
// field path. BindAndValidate is the single entry point handlers use.
package validation
