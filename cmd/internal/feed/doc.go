// Package feed pushes chirp activity to connected websocket clients.
//
// The hub keeps an in-memory subscriber set; the HTTP layer publishes an
// event whenever a chirp is created or deleted. Delivery is best-effort:
// slow subscribers are skipped, never waited on.
package feed
