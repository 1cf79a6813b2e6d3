package domain

import "errors"

var (
	// ErrNoMatch is returned when no candidate image clears the score floor
	ErrNoMatch = errors.New("no suitable image match found")

	// ErrNoCandidates is returned when the image index is empty
	ErrNoCandidates = errors.New("image index contains no candidates")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrIndexUnavailable is returned when the image index cannot be loaded
	ErrIndexUnavailable = errors.New("image index unavailable")

	// ErrManifestFailure is returned when the remote image manifest request fails
	ErrManifestFailure = errors.New("image manifest request failed")
)
