package headers

import (
	"iter"
	"strings"

	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/internal/grammar"
	"github.com/indigo-web/utils/strcomp"
)

// Header is a single field. Name keeps its original case.
type Header struct {
	Name, Value string
}

// Headers is an ordered collection of header fields. Duplicate names are allowed and are
// never merged. Name lookups are case-insensitive and done by linear search, which is
// faster than a map on the usual amount of fields.
type Headers struct {
	pairs      []Header
	uniqueBuff []string
}

func New() *Headers {
	return new(Headers)
}

// NewPrealloc returns an instance with pre-allocated underlying storage.
func NewPrealloc(n int) *Headers {
	return &Headers{
		pairs: make([]Header, 0, n),
	}
}

// NewFromPairs builds the collection from alternating names and values, keeping their
// order. A trailing name without a value is ignored.
func NewFromPairs(pairs ...string) *Headers {
	h := NewPrealloc(len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Add(pairs[i], pairs[i+1])
	}

	return h
}

// Add appends a new field. It never overwrites existing ones.
func (h *Headers) Add(name, value string) *Headers {
	h.pairs = append(h.pairs, Header{
		Name:  name,
		Value: value,
	})
	return h
}

// Value returns the first value of the name. Otherwise, empty string is returned.
func (h *Headers) Value(name string) string {
	value, _ := h.Get(name)
	return value
}

// Get returns the first value of the name and a bool, indicating whether it was found.
func (h *Headers) Get(name string) (value string, found bool) {
	for _, pair := range h.Expose() {
		if strcomp.EqualFold(name, pair.Name) {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns all the values of the name in insertion order. Returns nil if the name
// isn't presented. The returned slice is freshly allocated.
func (h *Headers) Values(name string) (values []string) {
	for _, pair := range h.pairs {
		if strcomp.EqualFold(pair.Name, name) {
			values = append(values, pair.Value)
		}
	}

	return values
}

// Has indicates, whether there's at least one field with the name.
func (h *Headers) Has(name string) bool {
	_, found := h.Get(name)
	return found
}

// Remove deletes all the fields with the name, preserving the order of the rest.
func (h *Headers) Remove(name string) *Headers {
	n := 0
	for _, pair := range h.pairs {
		if !strcomp.EqualFold(pair.Name, name) {
			h.pairs[n] = pair
			n++
		}
	}

	clear(h.pairs[n:])
	h.pairs = h.pairs[:n]

	return h
}

// Set replaces the value of the first field with the name, keeping its position and
// spelling, and removes all the other fields with the same name. If there's no such field,
// a new one is appended.
func (h *Headers) Set(name, value string) *Headers {
	for i, pair := range h.pairs {
		if !strcomp.EqualFold(pair.Name, name) {
			continue
		}

		h.pairs[i].Value = value
		rest := h.pairs[i+1:]
		h.pairs = h.pairs[:i+1]
		for _, p := range rest {
			if !strcomp.EqualFold(p.Name, name) {
				h.pairs = append(h.pairs, p)
			}
		}

		return h
	}

	return h.Add(name, value)
}

// Keys returns all unique names in order of their first appearance.
//
// WARNING: calling it twice will override values, returned by the first call. Consider
// copying the returned slice for safe use.
func (h *Headers) Keys() []string {
	h.uniqueBuff = h.uniqueBuff[:0]

	for _, pair := range h.pairs {
		if contains(h.uniqueBuff, pair.Name) {
			continue
		}

		h.uniqueBuff = append(h.uniqueBuff, pair.Name)
	}

	return h.uniqueBuff
}

// Iter returns an iterator over the fields in insertion order.
func (h *Headers) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range h.Expose() {
			if !yield(pair.Name, pair.Value) {
				break
			}
		}
	}
}

// Tokens iterates over the comma-separated members of all the values of the name, as
// they were a single list. Members are trimmed and parameters (anything after a
// semicolon) are cut off. Empty members are yielded as empty strings.
func (h *Headers) Tokens(name string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, pair := range h.pairs {
			if !strcomp.EqualFold(pair.Name, name) {
				continue
			}

			for value := pair.Value; ; {
				token, rest, more := strings.Cut(value, ",")
				if q := strings.IndexByte(token, ';'); q != -1 {
					token = token[:q]
				}

				if !yield(strings.TrimSpace(token)) {
					return
				}

				if !more {
					break
				}

				value = rest
			}
		}
	}
}

// Len returns the number of fields, counting duplicates.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}

	return len(h.pairs)
}

// Empty indicates whether there are no fields.
func (h *Headers) Empty() bool {
	return h.Len() == 0
}

// Expose returns the underlying slice. Try to avoid it if possible, as modifying it
// also modifies the collection.
func (h *Headers) Expose() []Header {
	if h == nil {
		return nil
	}

	return h.pairs
}

// Clone returns a deep copy.
func (h *Headers) Clone() *Headers {
	if h == nil {
		return New()
	}

	return &Headers{
		pairs: clone(h.pairs),
	}
}

// Clear removes all the entries. The allocated space is kept for reuse.
func (h *Headers) Clear() {
	clear(h.pairs)
	h.pairs = h.pairs[:0]
}

// Equal reports whether both collections hold the same fields in the same order.
// Names are compared case-sensitively, as the original spelling is a part of the field.
func (h *Headers) Equal(other *Headers) bool {
	if h.Len() != other.Len() {
		return false
	}

	otherPairs := other.Expose()
	for i, pair := range h.Expose() {
		if otherPairs[i] != pair {
			return false
		}
	}

	return true
}

// ValidateName checks that the name is a non-empty token.
func ValidateName(name string) error {
	if len(name) == 0 {
		return errors.NewTokenError(errors.HeaderName, errors.Empty)
	}

	if pos := grammar.Token(name); pos != -1 {
		return errors.IllegalCharAt(errors.HeaderName, pos)
	}

	return nil
}

// ValidateValue checks that the value has no CR, LF or other control characters. Interior
// whitespace is allowed, leading and trailing is not, as it isn't a part of the value on
// the wire.
func ValidateValue(value string) error {
	if pos := grammar.Field(value); pos != -1 {
		return errors.IllegalCharAt(errors.HeaderValue, pos)
	}

	if len(value) > 0 {
		if grammar.IsWhitespace(value[0]) {
			return errors.IllegalCharAt(errors.HeaderValue, 0)
		}

		if last := len(value) - 1; grammar.IsWhitespace(value[last]) {
			return errors.IllegalCharAt(errors.HeaderValue, last)
		}
	}

	return nil
}

// Validate checks every field of the collection.
func (h *Headers) Validate() error {
	for _, pair := range h.Expose() {
		if err := ValidateName(pair.Name); err != nil {
			return err
		}

		if err := ValidateValue(pair.Value); err != nil {
			return err
		}
	}

	return nil
}

func contains(collection []string, key string) bool {
	for _, element := range collection {
		if strcomp.EqualFold(element, key) {
			return true
		}
	}

	return false
}

func clone[T any](source []T) []T {
	if len(source) == 0 {
		return nil
	}

	newSlice := make([]T, len(source))
	copy(newSlice, source)

	return newSlice
}
