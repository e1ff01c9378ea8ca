package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "valid timezone America/New_York", timezone: "America/New_York"},
		{name: "valid timezone Asia/Tokyo", timezone: "Asia/Tokyo"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, loc)
			}
			assert.Equal(t, !tt.wantErr, ValidateTimezone(tt.timezone), "ValidateTimezone disagrees with LoadLocation")
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	got, err := ParseDateInLocation("2024-03-10", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, loc)), "got %v", got)
	assert.Same(t, loc, got.Location())

	for _, bad := range []string{"", "2024-13-01", "10/03/2024", "2024-02-30"} {
		_, err := ParseDateInLocation(bad, loc)
		assert.Error(t, err, bad)
	}
}

func TestParseMonthInLocation(t *testing.T) {
	got, err := ParseMonthInLocation("2024-02", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)), "got %v", got)

	_, err = ParseMonthInLocation("2024-2-1", time.UTC)
	assert.Error(t, err, "a full date is not a month")
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{in: "", want: time.Monday},
		{in: "monday", want: time.Monday},
		{in: "Sunday", want: time.Sunday},
		{in: "friday", want: time.Monday, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := ExpandPath("~/.config/sober/sober.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/sober/sober.db"), got)

	got, _ = ExpandPath("/tmp/sober.db")
	assert.Equal(t, "/tmp/sober.db", got, "absolute paths are unchanged")
	got, _ = ExpandPath("postgres://db/sober")
	assert.Equal(t, "postgres://db/sober", got, "URLs are unchanged")
}
