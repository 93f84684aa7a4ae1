package headers

import (
	"slices"
	"testing"

	"github.com/indigo-web/h1codec/errors"
	"github.com/stretchr/testify/require"
)

func collect(h *Headers) (pairs []Header) {
	for name, value := range h.Iter() {
		pairs = append(pairs, Header{name, value})
	}

	return pairs
}

func TestHeaders(t *testing.T) {
	t.Run("case-insensitive lookup", func(t *testing.T) {
		for _, name := range []string{"Content-Length", "content-length", "CONTENT-LENGTH"} {
			h := New().Add(name, "6")
			require.Equal(t, "6", h.Value("content-length"), name)
			require.Equal(t, "6", h.Value("Content-Length"), name)
			require.Equal(t, []string{"6"}, h.Values("CONTENT-length"), name)
			require.True(t, h.Has("cOnTeNt-LeNgTh"))
		}
	})

	t.Run("duplicates are preserved", func(t *testing.T) {
		h := New().
			Add("Set-Cookie", "a=1").
			Add("Host", "example.com").
			Add("set-cookie", "b=2")

		require.Equal(t, []string{"a=1", "b=2"}, h.Values("Set-Cookie"))
		require.Equal(t, "a=1", h.Value("SET-COOKIE"))
		require.Equal(t, 3, h.Len())
		require.Equal(t, []Header{
			{"Set-Cookie", "a=1"},
			{"Host", "example.com"},
			{"set-cookie", "b=2"},
		}, collect(h))
	})

	t.Run("missing", func(t *testing.T) {
		h := New().Add("Hello", "world")
		value, found := h.Get("World")
		require.False(t, found)
		require.Empty(t, value)
		require.Nil(t, h.Values("World"))
	})

	t.Run("remove", func(t *testing.T) {
		h := NewFromPairs(
			"A", "1",
			"b", "2",
			"a", "3",
			"C", "4",
		)
		h.Remove("a")
		require.Equal(t, []Header{{"b", "2"}, {"C", "4"}}, collect(h))
		h.Remove("nonexistent")
		require.Equal(t, 2, h.Len())
	})

	t.Run("set keeps position", func(t *testing.T) {
		h := NewFromPairs(
			"Host", "x",
			"Content-Length", "1",
			"Accept", "*/*",
			"content-length", "2",
		)
		h.Set("CONTENT-LENGTH", "6")
		require.Equal(t, []Header{
			{"Host", "x"},
			{"Content-Length", "6"},
			{"Accept", "*/*"},
		}, collect(h))

		h.Set("Connection", "close")
		require.Equal(t, Header{"Connection", "close"}, h.Expose()[h.Len()-1])
	})

	t.Run("keys", func(t *testing.T) {
		h := NewFromPairs("A", "1", "a", "2", "B", "3")
		require.Equal(t, []string{"A", "B"}, h.Keys())
	})

	t.Run("tokens", func(t *testing.T) {
		h := NewFromPairs(
			"Transfer-Encoding", "gzip ;q=1, deflate",
			"transfer-encoding", " chunked ",
		)
		require.Equal(t, []string{"gzip", "deflate", "chunked"}, slices.Collect(h.Tokens("Transfer-Encoding")))

		h = NewFromPairs("Content-Length", "5,,5")
		require.Equal(t, []string{"5", "", "5"}, slices.Collect(h.Tokens("content-length")))
	})

	t.Run("clone is independent", func(t *testing.T) {
		h := NewFromPairs("A", "1")
		c := h.Clone()
		c.Add("B", "2")
		require.Equal(t, 1, h.Len())
		require.True(t, h.Equal(NewFromPairs("A", "1")))
		require.False(t, h.Equal(c))
		require.False(t, h.Equal(NewFromPairs("a", "1")))
	})

	t.Run("clear", func(t *testing.T) {
		h := NewFromPairs("A", "1")
		h.Clear()
		require.True(t, h.Empty())
	})
}

func TestValidate(t *testing.T) {
	t.Run("names", func(t *testing.T) {
		require.NoError(t, ValidateName("X-Custom_Header.1"))
		require.ErrorIs(t, ValidateName(""), errors.ErrInvalidToken)

		for _, name := range []string{"Bad Name", "Bad:Name", "Bad\r\nName", "Bad(Name)"} {
			err := ValidateName(name)
			var tokenErr *errors.TokenError
			require.ErrorAs(t, err, &tokenErr, name)
			require.Equal(t, errors.HeaderName, tokenErr.Field)
		}
	})

	t.Run("values", func(t *testing.T) {
		require.NoError(t, ValidateValue(""))
		require.NoError(t, ValidateValue("text/html; charset=utf-8"))
		require.NoError(t, ValidateValue("a \t b"))
		require.ErrorIs(t, ValidateValue("a\r\nInjected: 1"), errors.ErrInvalidToken)
		require.ErrorIs(t, ValidateValue("a\x00"), errors.ErrInvalidToken)
		require.ErrorIs(t, ValidateValue(" padded"), errors.ErrInvalidToken)
		require.ErrorIs(t, ValidateValue("padded\t"), errors.ErrInvalidToken)
	})

	t.Run("collection", func(t *testing.T) {
		require.NoError(t, NewFromPairs("A", "1", "B", "2").Validate())
		require.Error(t, NewFromPairs("A", "1", "B C", "2").Validate())
	})
}
