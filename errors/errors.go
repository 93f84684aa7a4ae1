package errors

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrMalformedLine        = errors.New("malformed start line")
	ErrMalformedHeader      = errors.New("malformed header field")
	ErrMalformedChunk       = errors.New("malformed chunk-encoded data")
	ErrInvalidContentLength = errors.New("invalid content length")
	ErrHeadTooLarge         = errors.New("message head is too large")
	ErrUnexpectedEOF        = errors.New("stream ended before the message was complete")
	ErrBodyTooLarge         = errors.New("message body is too large")

	// ErrAmbiguousFraming is returned on conflicting Content-Length values. As this is a
	// header-level protocol violation, it also matches ErrMalformedHeader.
	ErrAmbiguousFraming error = &kindError{
		message: "ambiguous message framing",
		parent:  ErrMalformedHeader,
	}

	// ErrUntilCloseRequest is returned by the encoder when a request is asked to carry a
	// close-delimited body. Requests without explicit framing have no body, so such a
	// message cannot be represented on the wire.
	ErrUntilCloseRequest = errors.New("requests cannot carry a close-delimited body")

	// ErrBodyNotAllowed is returned by the encoder when a response with 1xx, 204 or 304
	// status code is given a non-empty body.
	ErrBodyNotAllowed = errors.New("status code doesn't allow a body")
)

type kindError struct {
	message string
	parent  error
}

func (k *kindError) Error() string {
	return k.message
}

func (k *kindError) Unwrap() error {
	return k.parent
}

// Field names the part of a message a token belongs to.
type Field uint8

const (
	Method Field = iota + 1
	Target
	Version
	Status
	Reason
	HeaderName
	HeaderValue
)

func (f Field) String() string {
	lut := [...]string{
		Method:      "method",
		Target:      "request target",
		Version:     "HTTP version",
		Status:      "status code",
		Reason:      "reason phrase",
		HeaderName:  "header name",
		HeaderValue: "header value",
	}
	if int(f) >= len(lut) || lut[f] == "" {
		return "unknown field"
	}

	return lut[f]
}

// Cause explains why a token was rejected.
type Cause uint8

const (
	Empty Cause = iota + 1
	IllegalChar
	WrongLength
	OutOfRange
)

func (c Cause) String() string {
	switch c {
	case Empty:
		return "empty"
	case IllegalChar:
		return "illegal character"
	case WrongLength:
		return "wrong length"
	case OutOfRange:
		return "out of range"
	default:
		return "unknown reason"
	}
}

// TokenError describes a rejected token. It always matches ErrInvalidToken.
type TokenError struct {
	Field  Field
	Reason Cause
	// Pos is the offset of the offending byte. It's meaningful only for IllegalChar.
	Pos int
}

func NewTokenError(field Field, reason Cause) *TokenError {
	return &TokenError{Field: field, Reason: reason, Pos: -1}
}

func IllegalCharAt(field Field, pos int) *TokenError {
	return &TokenError{Field: field, Reason: IllegalChar, Pos: pos}
}

func (t *TokenError) Error() string {
	msg := "invalid " + t.Field.String() + ": " + t.Reason.String()
	if t.Reason == IllegalChar && t.Pos >= 0 {
		msg += " at position " + strconv.Itoa(t.Pos)
	}

	return msg
}

func (t *TokenError) Unwrap() error {
	return ErrInvalidToken
}
