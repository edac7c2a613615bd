// Package errs defines the error shapes the API sends to clients.
//
// Every failure a handler returns ends up as an HTTPError rendered by the
// global error handler, so clients always get the same JSON structure with
// a human-readable `message`.
package errs
