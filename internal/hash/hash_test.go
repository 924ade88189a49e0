package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", h)
	assert.True(t, CheckPassword(h, "correct horse"))
	assert.False(t, CheckPassword(h, "correct hors"))
}

func TestHashPassword_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pw      string
		wantErr error
	}{
		{name: "empty", pw: "", wantErr: ErrPasswordTooShort},
		{name: "seven", pw: "1234567", wantErr: ErrPasswordTooShort},
		{name: "eight", pw: "12345678"},
		{name: "multibyte counts runes", pw: "пароль12"},
		{name: "over bcrypt limit", pw: strings.Repeat("a", 73), wantErr: ErrPasswordTooLong},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := HashPassword(tt.pw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	t.Parallel()
	assert.False(t, CheckPassword("not-a-hash", "whatever1"))
}
