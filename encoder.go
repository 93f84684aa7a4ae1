package h1codec

import (
	"bytes"
	"io"

	"github.com/indigo-web/h1codec/body"
	"github.com/indigo-web/h1codec/config"
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http"
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/internal/protocol/http1"
	pkgerrors "github.com/pkg/errors"
)

// EncodeRequest writes the request head followed by the body produced by b. Framing
// fields are adjusted to match b, while the request itself is left intact. A nil b is
// the same as body.None(). body.Head can't be used for requests.
func EncodeRequest(w io.Writer, request *http.Request, b body.Encoder) (int64, error) {
	if err := request.Validate(); err != nil {
		return 0, err
	}

	if _, isHead := b.(body.HeadEncoder); isHead {
		return 0, pkgerrors.Wrap(errors.ErrBodyNotAllowed, "request with a HEAD body encoder")
	}

	if b == nil {
		b = body.None()
	}

	hdrs := request.Headers.Clone()
	if err := http1.FixFraming(hdrs, b.Framing(), b.Length(), true); err != nil {
		return 0, err
	}

	return write(w, http1.AppendRequestHead(nil, request, hdrs), b)
}

// EncodeResponse does the same as EncodeRequest, but for responses. Responses with 1xx,
// 204 and 304 codes are written with their fields as is, and must have no body.
// body.Head sets the framing fields of the wrapped encoder, but writes no body.
func EncodeResponse(w io.Writer, response *http.Response, b body.Encoder) (int64, error) {
	if err := response.Validate(); err != nil {
		return 0, err
	}

	if b == nil {
		b = body.None()
	}

	hdrs := response.Headers.Clone()
	if response.Code.BodyForbidden() {
		if _, isHead := b.(body.HeadEncoder); !isHead && b.Length() != 0 {
			return 0, pkgerrors.Wrapf(errors.ErrBodyNotAllowed, "status %s", response.Code)
		}

		return write(w, http1.AppendResponseHead(nil, response, hdrs), body.None())
	}

	if err := http1.FixFraming(hdrs, b.Framing(), b.Length(), false); err != nil {
		return 0, err
	}

	return write(w, http1.AppendResponseHead(nil, response, hdrs), b)
}

func write(w io.Writer, head []byte, b body.Encoder) (int64, error) {
	n, err := w.Write(head)
	if err != nil {
		return int64(n), err
	}

	m, err := b.WriteTo(w)
	return int64(n) + m, err
}

// MarshalRequest encodes the request into a byte slice. The body is chunked if the
// request's own fields say so, otherwise it's sent with a Content-Length.
func MarshalRequest(request *http.Request) ([]byte, error) {
	var buff bytes.Buffer
	_, err := EncodeRequest(&buff, request, bodyEncoder(request.Headers, request.Body, request.Trailers, true))
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// MarshalResponse does the same as MarshalRequest, but for responses.
func MarshalResponse(response *http.Response) ([]byte, error) {
	var buff bytes.Buffer
	_, err := EncodeResponse(&buff, response, bodyEncoder(response.Headers, response.Body, response.Trailers, false))
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

func bodyEncoder(hdrs *headers.Headers, payload []byte, trailers *headers.Headers, isRequest bool) body.Encoder {
	if framing, _, err := http1.Resolve(hdrs, isRequest); err == nil && framing == http.Chunked {
		return body.ChunkedBytes(payload, config.Default().Body.ChunkSize).WithTrailers(trailers)
	}

	return body.Fixed(payload)
}
