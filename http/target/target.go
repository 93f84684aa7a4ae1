// Package target validates request targets. The target is kept opaque: no
// percent-decoding or URI normalization happens here.
package target

import (
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/internal/grammar"
)

// Target is a syntactically valid request-target.
type Target string

// Parse validates the target: it must be non-empty and consist of visible ASCII
// characters only.
func Parse(str string) (Target, error) {
	if len(str) == 0 {
		return "", errors.NewTokenError(errors.Target, errors.Empty)
	}

	if pos := grammar.Visible(str); pos != -1 {
		return "", errors.IllegalCharAt(errors.Target, pos)
	}

	return Target(str), nil
}

// Asterisk reports whether the target is in asterisk-form (used by OPTIONS).
func (t Target) Asterisk() bool {
	return t == "*"
}

// Origin reports whether the target is in origin-form, i.e. an absolute path.
func (t Target) Origin() bool {
	return len(t) > 0 && t[0] == '/'
}

func (t Target) String() string {
	return string(t)
}
