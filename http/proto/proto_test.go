package proto

import (
	"testing"

	"github.com/indigo-web/h1codec/errors"
	"github.com/stretchr/testify/require"
)

func TestProtocol(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		for _, p := range []Protocol{HTTP10, HTTP11} {
			parsed, err := Parse([]byte(p.String()))
			require.NoError(t, err)
			require.Equal(t, p, parsed)
			require.NoError(t, Validate(p))
		}
	})

	t.Run("unknown", func(t *testing.T) {
		for _, sample := range []string{"HTTP/2.0", "HTTP/1.2", "http/1.1", "HTTP/1,1", "HTTP/x.1", "HTTPS1.1"} {
			require.Equal(t, Unknown, FromBytes([]byte(sample)), sample)
			_, err := Parse([]byte(sample))
			require.ErrorIs(t, err, errors.ErrInvalidToken, sample)
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := Parse([]byte("HTTP/1.1 "))
		var tokenErr *errors.TokenError
		require.ErrorAs(t, err, &tokenErr)
		require.Equal(t, errors.WrongLength, tokenErr.Reason)
	})

	t.Run("string", func(t *testing.T) {
		require.Equal(t, "HTTP/1.0", HTTP10.String())
		require.Equal(t, "HTTP/1.1", HTTP11.String())
		require.Empty(t, Unknown.String())
		require.Error(t, Validate(Unknown))
	})
}
