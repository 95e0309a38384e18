// Package chirps implements posting, listing and deleting chirps, the
// short messages at the core of the product. Bodies are capped at 140
// characters and pass through a small profanity filter before storage.
package chirps
