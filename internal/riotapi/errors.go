package riotapi

import (
	"errors"
	"fmt"
)

// Failures coming back from riot are classified so callers can decide
// what is user facing, what is operator facing, and what is just noise
// to skip during a polling pass
var (
	ErrNotFound          = errors.New("not found")
	ErrCredentialMissing = errors.New("riot api key is not configured")
	ErrCredentialInvalid = errors.New("riot api key is invalid or expired")
	ErrMalformedResponse = errors.New("malformed response from riot")
)

// ProviderError is any non-2xx status that does not have a more
// specific classification
type ProviderError struct {
	Status int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("riot api request failed with status code %d", e.Status)
}

// TransportError wraps a network level failure, as opposed to a
// response riot actually produced
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach riot: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsCredentialError reports whether err should be surfaced to an
// operator instead of being retried silently
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrCredentialMissing) || errors.Is(err, ErrCredentialInvalid)
}
