package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"stored layout", "2024-03-09T14:05:07.000000000Z", want},
		{"rfc3339", "2024-03-09T14:05:07Z", want},
		{"rfc3339 with offset", "2024-03-09T11:05:07-03:00", want},
		{"iso without zone", "2024-03-09T14:05:07", want},
		{"sqlite datetime", "2024-03-09 14:05:07", want},
		{"date only", "2024-03-09", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
		})
	}
}

func TestParseTimestampEmptyAndInvalid(t *testing.T) {
	got, err := ParseTimestamp("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestTimestampStringSortsChronologically(t *testing.T) {
	earlier := NewTimestamp(time.Date(2024, 1, 1, 9, 0, 0, 5, time.UTC))
	later := NewTimestamp(time.Date(2024, 1, 1, 9, 0, 0, 50, time.UTC))

	assert.Len(t, earlier.String(), len(TimestampLayout))
	assert.Less(t, earlier.String(), later.String())
}

func TestTimestampValueAndScan(t *testing.T) {
	v, err := Timestamp{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	ts := NewTimestamp(time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600)))
	v, err = ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T15:00:00.000000000Z", v)

	var scanned Timestamp
	require.NoError(t, scanned.Scan([]byte("2024-05-01T15:00:00.000000000Z")))
	assert.True(t, ts.Equal(scanned.Time))

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(42))
}

func TestTimestampJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		At Timestamp `json:"at"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":null}`, string(out))

	var in struct {
		At Timestamp `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"2024-05-01T15:00:00Z"}`), &in))
	assert.Equal(t, 2024, in.At.Year())
}
