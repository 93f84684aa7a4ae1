package proto

import (
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/utils/uf"
)

type Protocol uint8

const (
	Unknown Protocol = 0
	HTTP10  Protocol = 1 << iota
	HTTP11

	HTTP1 = HTTP10 | HTTP11
)

func (p Protocol) String() string {
	lut := [...]string{HTTP10: "HTTP/1.0", HTTP11: "HTTP/1.1"}
	if int(p) >= len(lut) {
		return ""
	}

	return lut[p]
}

const (
	protoTokenLength   = len("HTTP/x.x")
	majorVersionOffset = len("HTTP/x") - 1
	minorVersionOffset = len("HTTP/x.x") - 1
	httpScheme         = "HTTP/"
)

var majorMinorVersionLUT = [10][10]Protocol{
	1: {0: HTTP10, 1: HTTP11},
}

// FromBytes recognizes an HTTP-version token. Unknown is returned for anything except
// HTTP/1.0 and HTTP/1.1.
func FromBytes(raw []byte) Protocol {
	if len(raw) != protoTokenLength || uf.B2S(raw[:majorVersionOffset]) != httpScheme ||
		raw[majorVersionOffset+1] != '.' {
		return Unknown
	}

	return FromVersion(raw[majorVersionOffset]-'0', raw[minorVersionOffset]-'0')
}

// FromVersion returns the protocol for the major and minor version digits.
func FromVersion(major, minor uint8) Protocol {
	if major > 9 || minor > 9 {
		return Unknown
	}

	return majorMinorVersionLUT[major][minor]
}

// Parse does the same as FromBytes, but reports why the token was rejected.
func Parse(raw []byte) (Protocol, error) {
	if len(raw) == 0 {
		return Unknown, errors.NewTokenError(errors.Version, errors.Empty)
	}

	if len(raw) != protoTokenLength {
		return Unknown, errors.NewTokenError(errors.Version, errors.WrongLength)
	}

	protocol := FromBytes(raw)
	if protocol == Unknown {
		return Unknown, errors.NewTokenError(errors.Version, errors.OutOfRange)
	}

	return protocol, nil
}

// Validate checks whether the protocol belongs to the supported closed set.
func Validate(p Protocol) error {
	if p != HTTP10 && p != HTTP11 {
		return errors.NewTokenError(errors.Version, errors.OutOfRange)
	}

	return nil
}
