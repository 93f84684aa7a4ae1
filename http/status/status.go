package status

import (
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/internal/grammar"
	"github.com/indigo-web/utils/uf"
)

const (
	minCode Code = 100
	maxCode Code = 999
)

// Validate checks whether the code is representable as 3 decimal digits.
func Validate(code Code) error {
	if code < minCode || code > maxCode {
		return errors.NewTokenError(errors.Status, errors.OutOfRange)
	}

	return nil
}

// Parse parses exactly 3 decimal digits.
func Parse(raw []byte) (Code, error) {
	if len(raw) == 0 {
		return 0, errors.NewTokenError(errors.Status, errors.Empty)
	}

	if len(raw) != 3 {
		return 0, errors.NewTokenError(errors.Status, errors.WrongLength)
	}

	var code Code
	for i, char := range raw {
		if char < '0' || char > '9' {
			return 0, errors.IllegalCharAt(errors.Status, i)
		}

		code = code*10 + Code(char-'0')
	}

	return code, Validate(code)
}

// ValidateReason checks that the reason phrase carries no control characters. An empty
// phrase is allowed.
func ValidateReason(reason string) error {
	if pos := grammar.Field(reason); pos != -1 {
		return errors.IllegalCharAt(errors.Reason, pos)
	}

	return nil
}

// Append appends the code as 3 decimal digits. The code is expected to be valid.
func Append(b []byte, code Code) []byte {
	return append(b,
		byte(code/100%10)+'0',
		byte(code/10%10)+'0',
		byte(code%10)+'0',
	)
}

// String returns the code as 3 decimal digits.
func (c Code) String() string {
	return uf.B2S(Append(make([]byte, 0, 3), c))
}

// Informational reports whether the code belongs to the 1xx class.
func (c Code) Informational() bool {
	return c >= 100 && c < 200
}

// BodyForbidden reports whether a response with the code never carries a body regardless
// of its headers (RFC 7230, 3.3.3).
func (c Code) BodyForbidden() bool {
	return c.Informational() || c == NoContent || c == NotModified
}

// KnownCodes lists all the codes having a registered reason phrase.
var KnownCodes = func() (codes []Code) {
	for code, reason := range reasons {
		if len(reason) > 0 {
			codes = append(codes, Code(code))
		}
	}

	return codes
}()
