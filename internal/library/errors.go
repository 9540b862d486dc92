package library

import "errors"

// Error kinds surfaced by the Service. Callers classify failures with
// errors.Is; the wrapping message carries the specifics.
var (
	// ErrValidation covers bad or missing input: empty titles, folder
	// ids that do not resolve. Always returned before any write.
	ErrValidation = errors.New("validation failed")

	// ErrMalformedPayload covers annotation JSON that does not decode
	// to an object with a pages array.
	ErrMalformedPayload = errors.New("malformed annotation payload")

	// ErrStorageWrite covers transport, permission and quota failures
	// on metadata or blob writes.
	ErrStorageWrite = errors.New("storage write failed")
)
