package chirps

import "errors"

// ErrTooLong means the chirp body exceeds the length cap. Maps to 400.
var ErrTooLong = errors.New("chirps: chirp is too long")

// ErrEmptyBody means the chirp body is empty after trimming. Maps to 400.
var ErrEmptyBody = errors.New("chirps: chirp body is empty")

// ErrNotFound means no chirp exists with the given id. Maps to 404.
var ErrNotFound = errors.New("chirps: chirp not found")

// ErrNotOwner means the caller does not own the chirp. Maps to 403.
var ErrNotOwner = errors.New("chirps: not the chirp author")
