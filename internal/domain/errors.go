package domain

import "errors"

var (
	// ErrSearchFailed signals that the search engine call could not complete.
	// The wrapped cause is for logs only and never reaches clients.
	ErrSearchFailed = errors.New("search failed")
	// ErrMalformedResponse signals an engine response missing a requested facet or suggest group.
	ErrMalformedResponse = errors.New("malformed search response")
	// ErrHotelNotFound signals a missing source hotel record.
	ErrHotelNotFound = errors.New("hotel not found")
	// ErrDocumentNotFound signals a missing search document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidRequest signals malformed request parameters.
	ErrInvalidRequest = errors.New("invalid request")
)

// KeyPrefix namespaces every key this service writes to the shared KV store.
const KeyPrefix = "hotelsearch:"
