// Package handler is the HTTP layer of the API.
//
// Handlers bind and validate requests through the validation package,
// call the service layer and render views. Failures are returned as
// errors and written by the global error handler.
package handler
