// Package sqlerr normalizes errors coming out of the book stores.
//
// Postgres driver errors are parsed into Error so logs can tell a constraint
// violation from a connection problem. Whatever the cause, the client gets a
// store error carrying the driver's message.
package sqlerr
