package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning time", input: "08:00", want: "08:00"},
		{name: "valid evening time", input: "22:00", want: "22:00"},
		{name: "valid with minutes", input: "10:30", want: "10:30"},
		{name: "missing leading zero", input: "8:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "10:75", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
	}{
		{name: "add one hour", start: "10:00", minutes: 60, want: "11:00"},
		{name: "add partial hour", start: "10:00", minutes: 90, want: "11:30"},
		{name: "subtract", start: "10:00", minutes: -30, want: "09:30"},
		{name: "wrap midnight", start: "23:30", minutes: 60, want: "00:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesUntil(t *testing.T) {
	start := TimeString("10:00")

	got, err := start.MinutesUntil("12:00")
	require.NoError(t, err)
	assert.Equal(t, 120, got)

	got, err = start.MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -60, got)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:30"))
	assert.False(t, TimeString("10:30").IsAfter("10:30"))
}

func TestTimeString_HourMinute(t *testing.T) {
	ts := TimeString("14:30")
	assert.Equal(t, 14, ts.Hour())
	assert.Equal(t, 30, ts.Minute())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("15:30:00")))
	assert.Equal(t, TimeString("15:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 1, 2, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
