// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// requests from the handlers, applies the book rules, and calls the store.
package service
