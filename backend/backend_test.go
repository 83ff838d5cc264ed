package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Mode
	}{
		{"r", ModeRead},
		{"rb", ModeRead},
		{"r+", ModeRead},
		{"w", ModeWrite},
		{"wb", ModeWrite},
		{"rw", ModeWrite},
		{"a", ModeAppend},
		{"ab", ModeAppend},
		{"wa", ModeAppend},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "b", "x+"} {
		_, err := ParseMode(bad)
		require.ErrorIs(t, err, ErrInvalidMode, bad)
	}
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "r", ModeRead.String())
	assert.Equal(t, "w", ModeWrite.String())
	assert.Equal(t, "a", ModeAppend.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
