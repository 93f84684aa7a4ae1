// Package dump renders decoded messages as JSON for inspection.
package dump

import (
	"io"

	"github.com/indigo-web/h1codec/http"
	"github.com/indigo-web/h1codec/http/headers"
	json "github.com/json-iterator/go"
)

type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Request struct {
	Method   string  `json:"method"`
	Target   string  `json:"target"`
	Protocol string  `json:"protocol"`
	Headers  []Field `json:"headers"`
	Body     string  `json:"body"`
	Trailers []Field `json:"trailers,omitempty"`
}

type Response struct {
	Protocol string  `json:"protocol"`
	Code     int     `json:"code"`
	Reason   string  `json:"reason"`
	Headers  []Field `json:"headers"`
	Body     string  `json:"body"`
	Trailers []Field `json:"trailers,omitempty"`
}

func FromRequest(request *http.Request) Request {
	return Request{
		Method:   request.Method.String(),
		Target:   request.Target.String(),
		Protocol: request.Protocol.String(),
		Headers:  fields(request.Headers),
		Body:     string(request.Body),
		Trailers: fields(request.Trailers),
	}
}

func FromResponse(response *http.Response) Response {
	return Response{
		Protocol: response.Protocol.String(),
		Code:     int(response.Code),
		Reason:   response.Reason,
		Headers:  fields(response.Headers),
		Body:     string(response.Body),
		Trailers: fields(response.Trailers),
	}
}

func fields(hdrs *headers.Headers) (out []Field) {
	for name, value := range hdrs.Iter() {
		out = append(out, Field{Name: name, Value: value})
	}

	return out
}

// WriteRequest writes the request as a single JSON object.
func WriteRequest(w io.Writer, request *http.Request) error {
	return write(w, FromRequest(request))
}

// WriteResponse writes the response as a single JSON object.
func WriteResponse(w io.Writer, response *http.Response) error {
	return write(w, FromResponse(response))
}

func write(w io.Writer, model any) error {
	stream := json.ConfigDefault.BorrowStream(w)
	stream.WriteVal(model)
	stream.WriteRaw("\n")
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return err
}
