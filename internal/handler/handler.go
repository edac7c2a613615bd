// Package handler is the HTTP layer, the first entry point after the router.
//
// Handlers bind and validate requests through the validation package, call
// the service layer and shape the responses.
package handler
