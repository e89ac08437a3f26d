package weather

import "errors"

// ErrorKind classifies a failed lookup.
type ErrorKind int

const (
	// KindTransportFailure covers network-level failures and any non-success
	// status the provider returns outside of the not-found case.
	KindTransportFailure ErrorKind = iota
	// KindNotFound means the provider does not know the named city.
	KindNotFound
	// KindLocationUnavailable means the geolocation capability failed or is
	// absent; no provider request was attempted.
	KindLocationUnavailable
)

// FetchError is the single failure type a lookup surfaces. Callers mostly
// consume the message; the kind exists for status mapping at the edge.
type FetchError struct {
	Kind    ErrorKind
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

// NewNotFound builds a not-found failure.
func NewNotFound(msg string) *FetchError {
	return &FetchError{Kind: KindNotFound, Message: msg}
}

// NewTransportFailure builds a generic transport failure.
func NewTransportFailure(msg string) *FetchError {
	return &FetchError{Kind: KindTransportFailure, Message: msg}
}

// NewLocationUnavailable builds a geolocation failure.
func NewLocationUnavailable(msg string) *FetchError {
	return &FetchError{Kind: KindLocationUnavailable, Message: msg}
}

// KindOf extracts the error kind, defaulting to a transport failure for
// errors that did not originate in this package.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransportFailure
}
