package meteostat

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by lookup and filter operations.
var (
	ErrDirectoryUnavailable = errors.New("station directory unavailable: no cached copy and source unreachable")
	ErrStationNotFound      = errors.New("station with the given id does not exist")
	ErrNoStationFound       = errors.New("no station matched the search criteria")
	ErrUnsupportedFilter    = errors.New("filter is not supported for this frequency")
)

// FetchError reports a failed download or decompression of a bulk file.
type FetchError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// ParseError reports malformed raw data for a station file. No partial
// dataset is ever returned alongside it.
type ParseError struct {
	Station string
	Detail  string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse data for station %q: %s", e.Station, e.Detail)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

// EngineError reports a failure inside the columnar engine during
// materialization.
type EngineError struct {
	Cause error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("failed to materialize dataset: %v", e.Cause)
}

func (e *EngineError) Unwrap() error { return e.Cause }

// SingleRowError is returned by CollectOne when the composed filters did
// not match exactly one row.
type SingleRowError struct {
	Actual int
}

func (e *SingleRowError) Error() string {
	return fmt.Sprintf("expected exactly one row, got %d", e.Actual)
}
