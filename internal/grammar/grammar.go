// Package grammar holds the RFC 7230 character classes used to validate message tokens.
package grammar

const (
	classTChar uint8 = 1 << iota
	classVChar
	classWhitespace
)

var classes = newClassTable()

func newClassTable() (table [256]uint8) {
	for c := 0x21; c <= 0x7e; c++ {
		table[c] |= classVChar
	}

	for c := '0'; c <= '9'; c++ {
		table[c] |= classTChar
	}

	for c := 'a'; c <= 'z'; c++ {
		table[c] |= classTChar
		table[c-'a'+'A'] |= classTChar
	}

	for _, c := range []byte("!#$%&'*+-.^_`|~") {
		table[c] |= classTChar
	}

	table[' '] |= classWhitespace
	table['\t'] |= classWhitespace

	return table
}

// IsTChar reports whether c may appear in a token (method, header name).
func IsTChar(c byte) bool {
	return classes[c]&classTChar != 0
}

// IsVChar reports whether c is a visible ASCII character.
func IsVChar(c byte) bool {
	return classes[c]&classVChar != 0
}

// IsWhitespace reports whether c is SP or HTAB.
func IsWhitespace(c byte) bool {
	return classes[c]&classWhitespace != 0
}

// IsFieldChar reports whether c may appear inside a header value or a reason phrase.
// obs-text (0x80-0xFF) is tolerated as RFC 7230 allows.
func IsFieldChar(c byte) bool {
	return classes[c]&(classVChar|classWhitespace) != 0 || c >= 0x80
}

// Token returns the position of the first non-tchar character, or -1.
func Token(s string) int {
	for i := 0; i < len(s); i++ {
		if !IsTChar(s[i]) {
			return i
		}
	}

	return -1
}

// Visible returns the position of the first non-vchar character, or -1.
func Visible(s string) int {
	for i := 0; i < len(s); i++ {
		if !IsVChar(s[i]) {
			return i
		}
	}

	return -1
}

// Field returns the position of the first character not allowed in a field value or
// reason phrase, or -1.
func Field(s string) int {
	for i := 0; i < len(s); i++ {
		if !IsFieldChar(s[i]) {
			return i
		}
	}

	return -1
}

// TrimWhitespace strips leading and trailing SP and HTAB.
func TrimWhitespace(b []byte) []byte {
	for len(b) > 0 && IsWhitespace(b[0]) {
		b = b[1:]
	}

	for len(b) > 0 && IsWhitespace(b[len(b)-1]) {
		b = b[:len(b)-1]
	}

	return b
}

// StripCR removes a single trailing CR, if any.
func StripCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}

	return b
}
