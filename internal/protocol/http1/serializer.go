package http1

import (
	"github.com/indigo-web/h1codec/http"
	"github.com/indigo-web/h1codec/http/headers"
)

const crlf = "\r\n"

// AppendRequestHead appends the request line, the fields and the empty line ending the
// head. Fields are taken from hdrs instead of the request, so adjusted copies can be used.
func AppendRequestHead(b []byte, request *http.Request, hdrs *headers.Headers) []byte {
	b = AppendRequestLine(b, request.Method, request.Target, request.Protocol)
	b = AppendFields(b, hdrs)
	return append(b, crlf...)
}

// AppendResponseHead does the same as AppendRequestHead, but for responses.
func AppendResponseHead(b []byte, response *http.Response, hdrs *headers.Headers) []byte {
	b = AppendStatusLine(b, response.Protocol, response.Code, response.Reason)
	b = AppendFields(b, hdrs)
	return append(b, crlf...)
}

// AppendFields appends each field as `name: value` CRLF in the collection order.
func AppendFields(b []byte, hdrs *headers.Headers) []byte {
	for _, field := range hdrs.Expose() {
		b = appendField(b, field)
	}

	return b
}

func appendField(b []byte, field headers.Header) []byte {
	b = append(b, field.Name...)
	b = append(b, ':', ' ')
	b = append(b, field.Value...)
	return append(b, crlf...)
}
