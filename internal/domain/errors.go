package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSource is returned for a source id missing from the registry.
	ErrUnknownSource = errors.New("unknown news source")
	// ErrInvalidQuery is returned for malformed page or limit values.
	ErrInvalidQuery = errors.New("invalid query")
)

// UpstreamError reports a failed call to an upstream outlet.
type UpstreamError struct {
	Source     string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s responded with status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
