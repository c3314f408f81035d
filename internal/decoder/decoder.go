// Package decoder turns raw Kafka payloads into validated series points.
//
// A payload is a flat JSON object with required fields `timestamp` (non-empty
// string) and `sentiment` (non-null number). `author` and `message` may be
// present but are not retained. Unknown keys are ignored.
package decoder

import (
	"encoding/json"
	"fmt"

	"github.com/mokeyzz1/buzzline-04-moses/internal/series"
)

// ParseError indicates a payload that is not a valid JSON key-value object.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON message: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError indicates a required field that is missing, null or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing or empty", e.Field)
}

// event mirrors the wire format. Pointer fields distinguish absent/null from
// zero values: a sentiment of 0 is valid, a missing one is not.
type event struct {
	Timestamp *string  `json:"timestamp"`
	Sentiment *float64 `json:"sentiment"`
	Author    string   `json:"author"`
	Message   string   `json:"message"`
}

// Decode parses one raw payload into a series point. It returns a *ParseError
// when the payload is not a JSON object and a *ValidationError when a
// required field is missing. It has no side effects; callers own logging.
func Decode(payload []byte) (series.Point, error) {
	var ev event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return series.Point{}, &ParseError{Err: err}
	}

	if ev.Timestamp == nil || *ev.Timestamp == "" {
		return series.Point{}, &ValidationError{Field: "timestamp"}
	}
	if ev.Sentiment == nil {
		return series.Point{}, &ValidationError{Field: "sentiment"}
	}

	return series.Point{
		Timestamp: *ev.Timestamp,
		Sentiment: *ev.Sentiment,
	}, nil
}
