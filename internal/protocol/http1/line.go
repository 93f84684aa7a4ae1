package http1

import (
	"bytes"

	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http/method"
	"github.com/indigo-web/h1codec/http/proto"
	"github.com/indigo-web/h1codec/http/status"
	"github.com/indigo-web/h1codec/http/target"
	"github.com/indigo-web/utils/uf"
	pkgerrors "github.com/pkg/errors"
)

// StartLine holds the fields of either a request line or a status line, depending on
// which one was decoded.
type StartLine struct {
	Method   method.Method
	Target   target.Target
	Protocol proto.Protocol
	Code     status.Code
	Reason   string
}

// ParseRequestLine decodes `method SP target SP version`. The line must not include the
// line terminator. Returned strings never reference the line.
func ParseRequestLine(line []byte) (StartLine, error) {
	m, rest, found := cutSpace(line)
	if !found {
		return StartLine{}, pkgerrors.Wrapf(errors.ErrMalformedLine, "request line %q: missing target", line)
	}

	t, version, found := cutSpace(rest)
	if !found {
		return StartLine{}, pkgerrors.Wrapf(errors.ErrMalformedLine, "request line %q: missing version", line)
	}

	if bytes.IndexByte(version, ' ') != -1 {
		return StartLine{}, pkgerrors.Wrapf(errors.ErrMalformedLine, "request line %q: too many fields", line)
	}

	if _, err := method.Parse(uf.B2S(m)); err != nil {
		return StartLine{}, err
	}

	if _, err := target.Parse(uf.B2S(t)); err != nil {
		return StartLine{}, err
	}

	protocol, err := proto.Parse(version)
	if err != nil {
		return StartLine{}, err
	}

	return StartLine{
		Method:   method.Method(m),
		Target:   target.Target(t),
		Protocol: protocol,
	}, nil
}

// ParseStatusLine decodes `version SP code SP reason`. The reason may contain spaces and
// may be empty, in which case the second space is optional.
func ParseStatusLine(line []byte) (StartLine, error) {
	version, rest, found := cutSpace(line)
	if !found {
		return StartLine{}, pkgerrors.Wrapf(errors.ErrMalformedLine, "status line %q: missing status code", line)
	}

	code, reason, _ := cutSpace(rest)

	protocol, err := proto.Parse(version)
	if err != nil {
		return StartLine{}, err
	}

	parsedCode, err := status.Parse(code)
	if err != nil {
		return StartLine{}, err
	}

	if err = status.ValidateReason(uf.B2S(reason)); err != nil {
		return StartLine{}, err
	}

	return StartLine{
		Protocol: protocol,
		Code:     parsedCode,
		Reason:   string(reason),
	}, nil
}

func cutSpace(b []byte) (before, after []byte, found bool) {
	if sp := bytes.IndexByte(b, ' '); sp != -1 {
		return b[:sp], b[sp+1:], true
	}

	return b, nil, false
}

// AppendRequestLine appends the request line including the CRLF terminator.
func AppendRequestLine(b []byte, m method.Method, t target.Target, protocol proto.Protocol) []byte {
	b = append(b, m...)
	b = append(b, ' ')
	b = append(b, t...)
	b = append(b, ' ')
	b = append(b, protocol.String()...)
	return append(b, crlf...)
}

// AppendStatusLine appends the status line including the CRLF terminator. The space
// before the reason is always present, even if the reason is empty.
func AppendStatusLine(b []byte, protocol proto.Protocol, code status.Code, reason string) []byte {
	b = append(b, protocol.String()...)
	b = append(b, ' ')
	b = status.Append(b, code)
	b = append(b, ' ')
	b = append(b, reason...)
	return append(b, crlf...)
}
