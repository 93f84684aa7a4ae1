package http1

import (
	"bytes"

	"github.com/indigo-web/h1codec/config"
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/internal/grammar"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/uf"
	pkgerrors "github.com/pkg/errors"
)

// Kind selects which start line the head decoder expects, if any.
type Kind uint8

const (
	RequestHead Kind = iota + 1
	ResponseHead
	// TrailerSection has no start line at all, only field lines terminated by an empty line.
	TrailerSection
)

type headState uint8

const (
	eStartLine headState = iota + 1
	eHeaderLine
)

// HeadDecoder incrementally decodes a message head: the start line followed by field
// lines and an empty line. It's resumable at any byte boundary.
type HeadDecoder struct {
	kind      Kind
	state     headState
	started   bool
	prealloc  int
	maxFields int
	line      StartLine
	headers   *headers.Headers
	lineBuff  *buffer.Buffer[byte]
	fieldBuff *buffer.Buffer[byte]
}

// NewHeadDecoder returns a decoder for request or response heads, limited by cfg.Head.
func NewHeadDecoder(kind Kind, cfg *config.Config) *HeadDecoder {
	return newHeadDecoder(
		kind,
		cfg.Head.StartLine.Default, cfg.Head.StartLine.Maximal,
		cfg.Head.Headers,
	)
}

// NewTrailerDecoder returns a decoder for the trailer section of a chunked body, limited
// by cfg.Body.Trailers.
func NewTrailerDecoder(cfg *config.Config) *HeadDecoder {
	return newHeadDecoder(TrailerSection, 0, 0, cfg.Body.Trailers)
}

func newHeadDecoder(kind Kind, lineDefault, lineMaximal int, limits config.Headers) *HeadDecoder {
	h := &HeadDecoder{
		kind:      kind,
		prealloc:  limits.Number.Default,
		maxFields: limits.Number.Maximal,
		headers:   headers.NewPrealloc(limits.Number.Default),
		fieldBuff: buffer.NewBuffer[byte](limits.Space.Default, limits.Space.Maximal),
	}

	if kind != TrailerSection {
		h.lineBuff = buffer.NewBuffer[byte](lineDefault, lineMaximal)
	}

	h.rewind()

	return h
}

// Parse feeds the data into the decoder. It returns done=true when the empty line ending
// the head is met, in which case extra holds the bytes following it. done=false with nil
// error means more data is required.
func (h *HeadDecoder) Parse(data []byte) (done bool, extra []byte, err error) {
	if len(data) > 0 {
		h.started = true
	}

	switch h.state {
	case eStartLine:
		goto startLine
	case eHeaderLine:
		goto headerLine
	default:
		panic("unreachable code")
	}

startLine:
	{
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if !h.lineBuff.Append(data...) {
				return false, nil, pkgerrors.Wrap(errors.ErrHeadTooLarge, "start line")
			}

			return false, nil, nil
		}

		if !h.lineBuff.Append(data[:lf]...) {
			return false, nil, pkgerrors.Wrap(errors.ErrHeadTooLarge, "start line")
		}

		line := grammar.StripCR(h.lineBuff.Finish())
		if h.kind == RequestHead {
			h.line, err = ParseRequestLine(line)
		} else {
			h.line, err = ParseStatusLine(line)
		}

		if err != nil {
			return false, nil, err
		}

		data = data[lf+1:]
		h.state = eHeaderLine
		goto headerLine
	}

headerLine:
	{
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if !h.fieldBuff.Append(data...) {
				return false, nil, pkgerrors.Wrap(errors.ErrHeadTooLarge, "header fields")
			}

			return false, nil, nil
		}

		if !h.fieldBuff.Append(data[:lf]...) {
			return false, nil, pkgerrors.Wrap(errors.ErrHeadTooLarge, "header fields")
		}

		data = data[lf+1:]
		line := grammar.StripCR(h.fieldBuff.Finish())
		if len(line) == 0 {
			h.rewind()
			return true, data, nil
		}

		if h.headers.Len() >= h.maxFields {
			return false, nil, pkgerrors.Wrapf(errors.ErrHeadTooLarge, "more than %d header fields", h.maxFields)
		}

		name, value, err := ParseFieldLine(line)
		if err != nil {
			return false, nil, err
		}

		h.headers.Add(name, value)
		goto headerLine
	}
}

// ParseFieldLine decodes `name ":" OWS value OWS`. Obsolete line folding is rejected.
func ParseFieldLine(line []byte) (name, value string, err error) {
	if len(line) > 0 && grammar.IsWhitespace(line[0]) {
		return "", "", pkgerrors.Wrapf(errors.ErrMalformedHeader, "%q: obsolete line folding", line)
	}

	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return "", "", pkgerrors.Wrapf(errors.ErrMalformedHeader, "%q: no colon", line)
	}

	rawName, rawValue := line[:colon], grammar.TrimWhitespace(line[colon+1:])
	if len(rawName) == 0 || grammar.Token(uf.B2S(rawName)) != -1 {
		return "", "", pkgerrors.Wrapf(errors.ErrMalformedHeader, "%q: invalid field name", line)
	}

	if pos := grammar.Field(uf.B2S(rawValue)); pos != -1 {
		return "", "", pkgerrors.Wrapf(errors.ErrMalformedHeader, "%q: illegal character in value", line)
	}

	return string(rawName), string(rawValue), nil
}

// Started reports whether any byte of the current head was consumed.
func (h *HeadDecoder) Started() bool {
	return h.started
}

// StartLine returns the start line of the last decoded head.
func (h *HeadDecoder) StartLine() StartLine {
	return h.line
}

// Headers returns the fields decoded so far. The collection is owned by the caller after
// the head is done, as Reset installs a new one.
func (h *HeadDecoder) Headers() *headers.Headers {
	return h.headers
}

// Reset brings the decoder back to its initial state with an empty header collection.
func (h *HeadDecoder) Reset() {
	h.rewind()
	h.line = StartLine{}
	h.headers = headers.NewPrealloc(h.prealloc)
}

// rewind prepares the decoder for the next head, keeping the results of the last one.
func (h *HeadDecoder) rewind() {
	h.state = eStartLine
	if h.kind == TrailerSection {
		h.state = eHeaderLine
	} else {
		h.lineBuff.Clear()
	}

	h.fieldBuff.Clear()
	h.started = false
}
