package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mokeyzz1/buzzline-04-moses/internal/series"
)

func TestDecodeValidMessage(t *testing.T) {
	point, err := Decode([]byte(`{"timestamp":"2025-01-29 14:35:20","sentiment":0.9}`))
	require.NoError(t, err)
	assert.Equal(t, series.Point{Timestamp: "2025-01-29 14:35:20", Sentiment: 0.9}, point)
}

func TestDecodeIgnoresOptionalAndUnknownFields(t *testing.T) {
	point, err := Decode([]byte(`{"message":"I love Python!","author":"Eve","sentiment":0.9,"timestamp":"2025-01-29 14:35:20","extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-29 14:35:20", point.Timestamp)
	assert.Equal(t, 0.9, point.Sentiment)
}

func TestDecodeZeroSentimentIsValid(t *testing.T) {
	point, err := Decode([]byte(`{"timestamp":"t1","sentiment":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, point.Sentiment)
}

func TestDecodeNegativeSentiment(t *testing.T) {
	point, err := Decode([]byte(`{"timestamp":"t2","sentiment":-0.3}`))
	require.NoError(t, err)
	assert.Equal(t, -0.3, point.Sentiment)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestDecodeNonObjectPayload(t *testing.T) {
	for _, payload := range []string{`[1,2]`, `"hello"`, `42`} {
		_, err := Decode([]byte(payload))
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "payload %s", payload)
	}
}

func TestDecodeMissingSentiment(t *testing.T) {
	_, err := Decode([]byte(`{"timestamp":"t1"}`))
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "sentiment", validationErr.Field)
}

func TestDecodeNullSentiment(t *testing.T) {
	_, err := Decode([]byte(`{"timestamp":"t1","sentiment":null}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "sentiment", validationErr.Field)
}

func TestDecodeMissingTimestamp(t *testing.T) {
	_, err := Decode([]byte(`{"sentiment":0.5}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "timestamp", validationErr.Field)
}

func TestDecodeEmptyTimestamp(t *testing.T) {
	_, err := Decode([]byte(`{"timestamp":"","sentiment":0.5}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "timestamp", validationErr.Field)
}
