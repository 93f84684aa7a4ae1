package http1

import (
	"math"
	"strconv"
	"strings"

	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http"
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/utils/strcomp"
	pkgerrors "github.com/pkg/errors"
)

const chunkedCoding = "chunked"

// Resolve determines how the body of a message with the given headers is framed. The
// returned length is meaningful only for http.Fixed.
//
// Transfer-Encoding takes precedence over Content-Length, which is ignored whenever the
// former is present. If the final transfer coding isn't chunked, a request is rejected
// and a response is read until the stream closes.
func Resolve(hdrs *headers.Headers, isRequest bool) (http.Framing, int64, error) {
	if hdrs.Has(headers.TransferEncoding) {
		if finalCoding(hdrs) == chunkedCoding {
			return http.Chunked, 0, nil
		}

		if isRequest {
			return http.None, 0, pkgerrors.Wrap(errors.ErrMalformedHeader, "final transfer coding must be chunked")
		}

		return http.UntilClose, 0, nil
	}

	if hdrs.Has(headers.ContentLength) {
		length, err := contentLength(hdrs)
		if err != nil {
			return http.None, 0, err
		}

		return http.Fixed, length, nil
	}

	if isRequest {
		return http.None, 0, nil
	}

	return http.UntilClose, 0, nil
}

// finalCoding returns the last non-empty transfer coding, lowercased.
func finalCoding(hdrs *headers.Headers) (final string) {
	for coding := range hdrs.Tokens(headers.TransferEncoding) {
		if len(coding) > 0 {
			final = coding
		}
	}

	if strcomp.EqualFold(final, chunkedCoding) {
		return chunkedCoding
	}

	return strings.ToLower(final)
}

// contentLength parses every Content-Length value, including comma-separated lists of
// them. All the values must be the same.
func contentLength(hdrs *headers.Headers) (int64, error) {
	length := int64(-1)

	for _, value := range hdrs.Values(headers.ContentLength) {
		for _, member := range strings.Split(value, ",") {
			n, err := parseContentLength(strings.Trim(member, " \t"))
			if err != nil {
				return 0, err
			}

			if length != -1 && n != length {
				return 0, pkgerrors.Wrapf(errors.ErrAmbiguousFraming, "content length %d != %d", length, n)
			}

			length = n
		}
	}

	return length, nil
}

func parseContentLength(value string) (length int64, err error) {
	if len(value) == 0 {
		return 0, pkgerrors.Wrap(errors.ErrInvalidContentLength, "empty value")
	}

	for i := 0; i < len(value); i++ {
		char := value[i]
		if char < '0' || char > '9' {
			return 0, pkgerrors.Wrapf(errors.ErrInvalidContentLength, "%q", value)
		}

		digit := int64(char - '0')
		if length > (math.MaxInt64-digit)/10 {
			return 0, pkgerrors.Wrapf(errors.ErrInvalidContentLength, "%q overflows", value)
		}

		length = length*10 + digit
	}

	return length, nil
}

// FixFraming adjusts the framing fields of hdrs to describe a body with the given framing
// and length. The collection is modified in place, so it must be owned by the caller.
func FixFraming(hdrs *headers.Headers, framing http.Framing, length int64, isRequest bool) error {
	switch framing {
	case http.Fixed:
		hdrs.Remove(headers.TransferEncoding)
		if length == 0 && isRequest && !hdrs.Has(headers.ContentLength) {
			// a request without framing fields has no body already
			return nil
		}

		setContentLength(hdrs, strconv.FormatInt(length, 10))
	case http.Chunked:
		hdrs.Remove(headers.ContentLength)
		if finalCoding(hdrs) != chunkedCoding {
			if hasCoding(hdrs, chunkedCoding) {
				return pkgerrors.Wrap(errors.ErrMalformedHeader, "chunked must be the final transfer coding")
			}

			if hdrs.Has(headers.TransferEncoding) {
				appendCoding(hdrs, chunkedCoding)
			} else {
				hdrs.Add(headers.TransferEncoding, chunkedCoding)
			}
		}
	case http.UntilClose:
		if isRequest {
			return errors.ErrUntilCloseRequest
		}

		hdrs.Remove(headers.ContentLength)
		hdrs.Remove(headers.TransferEncoding)
	case http.None:
		hdrs.Remove(headers.ContentLength)
		hdrs.Remove(headers.TransferEncoding)
	default:
		panic("unknown framing")
	}

	return nil
}

func hasCoding(hdrs *headers.Headers, coding string) bool {
	for token := range hdrs.Tokens(headers.TransferEncoding) {
		if strcomp.EqualFold(token, coding) {
			return true
		}
	}

	return false
}

// setContentLength overrides the first Content-Length field keeping its position and
// spelling, or appends a new one.
func setContentLength(hdrs *headers.Headers, value string) {
	hdrs.Set(headers.ContentLength, value)
}

// appendCoding appends the coding to the last Transfer-Encoding field in place.
func appendCoding(hdrs *headers.Headers, coding string) {
	pairs := hdrs.Expose()
	for i := len(pairs) - 1; i >= 0; i-- {
		if !strcomp.EqualFold(pairs[i].Name, headers.TransferEncoding) {
			continue
		}

		value := strings.TrimRight(pairs[i].Value, " \t")
		if len(value) > 0 {
			value += ", "
		}

		pairs[i].Value = value + coding
		return
	}
}
