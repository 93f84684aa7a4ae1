package http1

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/h1codec/config"
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/http/method"
	"github.com/indigo-web/h1codec/http/proto"
	"github.com/indigo-web/h1codec/http/status"
	"github.com/stretchr/testify/require"
)

func splitIntoParts(req []byte, n int) (parts [][]byte) {
	for i := 0; i < len(req); i += n {
		end := i + n
		if end > len(req) {
			end = len(req)
		}

		parts = append(parts, req[i:end])
	}

	return parts
}

func feedPartially(d *HeadDecoder, raw []byte, n int) (done bool, extra []byte, err error) {
	parts := splitIntoParts(raw, n)

	for i, chunk := range parts {
		done, extra, err = d.Parse(chunk)
		if err != nil {
			return done, extra, err
		}
		if done {
			if i+1 < len(parts) {
				return true, extra, fmt.Errorf("not all chunks were fed")
			}

			break
		}
	}

	return done, extra, err
}

func genHeaders(n int) (out []string) {
	for i := 0; i < n; i++ {
		out = append(out, genHeader())
	}

	return out
}

func genHeader() string {
	return fmt.Sprintf("%[1]s: %[1]s", uniuri.NewLen(16))
}

func genHeaderPairs(n int) (pairs []string) {
	for i := 0; i < n; i++ {
		pairs = append(pairs, uniuri.NewLen(8), uniuri.NewLen(24))
	}

	return pairs
}

func TestHeadDecoder(t *testing.T) {
	cfg := config.Default()

	t.Run("simple GET", func(t *testing.T) {
		d := NewHeadDecoder(RequestHead, cfg)
		done, extra, err := d.Parse([]byte("GET / HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.True(t, done)
		require.Empty(t, extra)
		require.Equal(t, method.GET, d.StartLine().Method)
		require.Equal(t, "/", d.StartLine().Target.String())
		require.Equal(t, proto.HTTP11, d.StartLine().Protocol)
		require.True(t, d.Headers().Empty())
	})

	t.Run("headers with duplicates", func(t *testing.T) {
		raw := "GET / HTTP/1.1\r\nAccept: one,two\r\nHost:  example.com \t\r\naccept: three\r\n\r\n"
		d := NewHeadDecoder(RequestHead, cfg)
		done, extra, err := d.Parse([]byte(raw))
		require.NoError(t, err)
		require.True(t, done)
		require.Empty(t, extra)

		want := headers.NewFromPairs(
			"Accept", "one,two",
			"Host", "example.com",
			"accept", "three",
		)
		require.True(t, want.Equal(d.Headers()))
		require.Equal(t, []string{"one,two", "three"}, d.Headers().Values("ACCEPT"))
	})

	t.Run("response head", func(t *testing.T) {
		d := NewHeadDecoder(ResponseHead, cfg)
		done, extra, err := d.Parse([]byte("HTTP/1.0 200 OK\r\ncontent-length: 6\r\n\r\nbarbaz"))
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "barbaz", string(extra))
		require.Equal(t, status.OK, d.StartLine().Code)
		require.Equal(t, "OK", d.StartLine().Reason)
		require.Equal(t, "6", d.Headers().Value("Content-Length"))
	})

	t.Run("bare LF", func(t *testing.T) {
		d := NewHeadDecoder(RequestHead, cfg)
		done, _, err := d.Parse([]byte("GET / HTTP/1.1\nHello: world\n\n"))
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "world", d.Headers().Value("hello"))
	})

	t.Run("pipelined", func(t *testing.T) {
		d := NewHeadDecoder(RequestHead, cfg)
		raw := []byte("GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n")
		done, extra, err := d.Parse(raw)
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "/a", d.StartLine().Target.String())

		d.Reset()
		done, extra, err = d.Parse(extra)
		require.NoError(t, err)
		require.True(t, done)
		require.Empty(t, extra)
		require.Equal(t, "/b", d.StartLine().Target.String())
	})

	t.Run("split at every position", func(t *testing.T) {
		hdrs := genHeaders(10)
		raw := []byte("PATCH /hello%20world?a=b HTTP/1.0\r\n" + strings.Join(hdrs, "\r\n") + "\r\n\r\n")

		for i := 1; i <= len(raw); i++ {
			d := NewHeadDecoder(RequestHead, cfg)
			done, extra, err := feedPartially(d, raw, i)
			require.NoError(t, err)
			require.True(t, done)
			require.Empty(t, extra)
			require.Equal(t, method.PATCH, d.StartLine().Method)
			require.Equal(t, "/hello%20world?a=b", d.StartLine().Target.String())
			require.Equal(t, proto.HTTP10, d.StartLine().Protocol)
			require.Equal(t, len(hdrs), d.Headers().Len())

			for j, field := range d.Headers().Expose() {
				name, value, _ := strings.Cut(hdrs[j], ": ")
				require.Equal(t, name, field.Name)
				require.Equal(t, value, field.Value)
			}
		}
	})

	t.Run("malformed header lines", func(t *testing.T) {
		for _, line := range []string{
			"Hello world",
			": value",
			"Hel lo: world",
			"Hello : world",
			" folded: line",
			"Hello: wor\x01ld",
		} {
			d := NewHeadDecoder(RequestHead, cfg)
			_, _, err := d.Parse([]byte("GET / HTTP/1.1\r\n" + line + "\r\n\r\n"))
			require.ErrorIs(t, err, errors.ErrMalformedHeader, line)
		}
	})

	t.Run("empty start line", func(t *testing.T) {
		d := NewHeadDecoder(RequestHead, cfg)
		_, _, err := d.Parse([]byte("\r\nGET / HTTP/1.1\r\n\r\n"))
		require.ErrorIs(t, err, errors.ErrMalformedLine)
	})

	t.Run("start line too long", func(t *testing.T) {
		cfg := config.Default()
		cfg.Head.StartLine.Maximal = 32
		d := NewHeadDecoder(RequestHead, cfg)
		_, _, err := d.Parse([]byte("GET /" + strings.Repeat("a", 64)))
		require.ErrorIs(t, err, errors.ErrHeadTooLarge)
	})

	t.Run("too many headers", func(t *testing.T) {
		cfg := config.Default()
		cfg.Head.Headers.Number.Maximal = 5
		d := NewHeadDecoder(RequestHead, cfg)
		raw := "GET / HTTP/1.1\r\n" + strings.Join(genHeaders(6), "\r\n") + "\r\n\r\n"
		_, _, err := d.Parse([]byte(raw))
		require.ErrorIs(t, err, errors.ErrHeadTooLarge)
	})

	t.Run("headers too large", func(t *testing.T) {
		cfg := config.Default()
		cfg.Head.Headers.Space.Maximal = 64
		d := NewHeadDecoder(RequestHead, cfg)
		raw := "GET / HTTP/1.1\r\n" + strings.Join(genHeaders(3), "\r\n") + "\r\n\r\n"
		_, _, err := d.Parse([]byte(raw))
		require.ErrorIs(t, err, errors.ErrHeadTooLarge)
	})

	t.Run("started", func(t *testing.T) {
		d := NewHeadDecoder(RequestHead, cfg)
		require.False(t, d.Started())
		done, _, err := d.Parse([]byte("GE"))
		require.NoError(t, err)
		require.False(t, done)
		require.True(t, d.Started())
		d.Reset()
		require.False(t, d.Started())
	})

	t.Run("values do not alias input", func(t *testing.T) {
		raw := []byte("GET / HTTP/1.1\r\nHello: world\r\n\r\n")
		d := NewHeadDecoder(RequestHead, cfg)
		_, _, err := d.Parse(raw)
		require.NoError(t, err)
		hdrs := d.Headers()
		d.Reset()
		_, _, err = d.Parse([]byte("GET / HTTP/1.1\r\nAAAAA: BBBBB\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "world", hdrs.Value("hello"))
	})
}

func TestTrailerDecoder(t *testing.T) {
	d := NewTrailerDecoder(config.Default())
	done, extra, err := d.Parse([]byte("Checksum: abc\r\nExpires: never\r\n\r\nnext"))
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "next", string(extra))
	require.Equal(t, "abc", d.Headers().Value("checksum"))
	require.Equal(t, "never", d.Headers().Value("expires"))
}
