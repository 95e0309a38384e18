// Package identity holds Chirpy's user model and its persistence boundary.
//
// Users are referenced by uuid; the stored password hash is opaque to this
// package (hashing lives in cmd/security/password). Errors follow a stable
// Op + Kind contract so the HTTP boundary can map them to status codes
// without string matching.
package identity
