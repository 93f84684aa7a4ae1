package http1

import (
	"testing"

	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http"
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("no framing fields", func(t *testing.T) {
		framing, _, err := Resolve(headers.New(), true)
		require.NoError(t, err)
		require.Equal(t, http.None, framing)

		framing, _, err = Resolve(headers.New(), false)
		require.NoError(t, err)
		require.Equal(t, http.UntilClose, framing)
	})

	t.Run("content length case insensitive", func(t *testing.T) {
		for _, name := range []string{"Content-Length", "content-length", "CONTENT-LENGTH"} {
			framing, length, err := Resolve(headers.NewFromPairs(name, "6"), true)
			require.NoError(t, err)
			require.Equal(t, http.Fixed, framing)
			require.Equal(t, int64(6), length)
		}
	})

	t.Run("repeated content length", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Content-Length", "5, 5", "content-length", "5")
		framing, length, err := Resolve(hdrs, false)
		require.NoError(t, err)
		require.Equal(t, http.Fixed, framing)
		require.Equal(t, int64(5), length)
	})

	t.Run("conflicting content length", func(t *testing.T) {
		for _, hdrs := range []*headers.Headers{
			headers.NewFromPairs("Content-Length", "5", "Content-Length", "6"),
			headers.NewFromPairs("Content-Length", "5,6"),
		} {
			_, _, err := Resolve(hdrs, true)
			require.ErrorIs(t, err, errors.ErrAmbiguousFraming)
			require.ErrorIs(t, err, errors.ErrMalformedHeader)
		}
	})

	t.Run("invalid content length", func(t *testing.T) {
		for _, value := range []string{"", "-1", "+5", "0x10", "1 2", "99999999999999999999"} {
			_, _, err := Resolve(headers.NewFromPairs("Content-Length", value), true)
			require.ErrorIs(t, err, errors.ErrInvalidContentLength, value)
		}
	})

	t.Run("chunked wins over content length", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Content-Length", "10", "Transfer-Encoding", "gzip, Chunked")
		framing, _, err := Resolve(hdrs, true)
		require.NoError(t, err)
		require.Equal(t, http.Chunked, framing)
	})

	t.Run("chunked across multiple fields", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Transfer-Encoding", "gzip", "transfer-encoding", "chunked")
		framing, _, err := Resolve(hdrs, false)
		require.NoError(t, err)
		require.Equal(t, http.Chunked, framing)
	})

	t.Run("chunked is not final", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Transfer-Encoding", "chunked, gzip")
		_, _, err := Resolve(hdrs, true)
		require.ErrorIs(t, err, errors.ErrMalformedHeader)

		framing, _, err := Resolve(hdrs, false)
		require.NoError(t, err)
		require.Equal(t, http.UntilClose, framing)
	})
}

func TestFixFraming(t *testing.T) {
	t.Run("fixed appends content length", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Host", "example.com")
		require.NoError(t, FixFraming(hdrs, http.Fixed, 6, true))
		require.True(t, headers.NewFromPairs("Host", "example.com", "content-length", "6").Equal(hdrs))
	})

	t.Run("fixed overrides content length in place", func(t *testing.T) {
		hdrs := headers.NewFromPairs(
			"Content-Length", "100", "Host", "example.com", "CONTENT-LENGTH", "100", "Transfer-Encoding", "chunked",
		)
		require.NoError(t, FixFraming(hdrs, http.Fixed, 6, false))
		require.True(t, headers.NewFromPairs("Content-Length", "6", "Host", "example.com").Equal(hdrs))
	})

	t.Run("zero length request", func(t *testing.T) {
		hdrs := headers.New()
		require.NoError(t, FixFraming(hdrs, http.Fixed, 0, true))
		require.True(t, hdrs.Empty())

		hdrs = headers.NewFromPairs("Content-Length", "5")
		require.NoError(t, FixFraming(hdrs, http.Fixed, 0, true))
		require.Equal(t, "0", hdrs.Value("content-length"))
	})

	t.Run("zero length response", func(t *testing.T) {
		hdrs := headers.New()
		require.NoError(t, FixFraming(hdrs, http.Fixed, 0, false))
		require.Equal(t, "0", hdrs.Value("content-length"))
	})

	t.Run("chunked", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Content-Length", "5")
		require.NoError(t, FixFraming(hdrs, http.Chunked, -1, true))
		require.True(t, headers.NewFromPairs("transfer-encoding", "chunked").Equal(hdrs))

		hdrs = headers.NewFromPairs("Transfer-Encoding", "gzip", "Host", "example.com")
		require.NoError(t, FixFraming(hdrs, http.Chunked, -1, true))
		require.True(t, headers.NewFromPairs("Transfer-Encoding", "gzip, chunked", "Host", "example.com").Equal(hdrs))

		hdrs = headers.NewFromPairs("Transfer-Encoding", "CHUNKED")
		require.NoError(t, FixFraming(hdrs, http.Chunked, -1, false))
		require.True(t, headers.NewFromPairs("Transfer-Encoding", "CHUNKED").Equal(hdrs))
	})

	t.Run("chunked applied twice", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Transfer-Encoding", "chunked, gzip")
		err := FixFraming(hdrs, http.Chunked, -1, false)
		require.ErrorIs(t, err, errors.ErrMalformedHeader)

		hdrs = headers.NewFromPairs("Transfer-Encoding", "Chunked", "Transfer-Encoding", "gzip")
		require.ErrorIs(t, FixFraming(hdrs, http.Chunked, -1, true), errors.ErrMalformedHeader)
	})

	t.Run("until close", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Content-Length", "5", "Transfer-Encoding", "chunked", "Host", "x")
		require.ErrorIs(t, FixFraming(hdrs.Clone(), http.UntilClose, -1, true), errors.ErrUntilCloseRequest)
		require.NoError(t, FixFraming(hdrs, http.UntilClose, -1, false))
		require.True(t, headers.NewFromPairs("Host", "x").Equal(hdrs))
	})

	t.Run("none", func(t *testing.T) {
		hdrs := headers.NewFromPairs("Content-Length", "5", "Host", "x")
		require.NoError(t, FixFraming(hdrs, http.None, 0, true))
		require.True(t, headers.NewFromPairs("Host", "x").Equal(hdrs))
	})
}
