package http1

import (
	"bytes"
	"io"

	"github.com/indigo-web/h1codec/config"
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http/headers"
	"github.com/indigo-web/h1codec/internal/hexconv"
	pkgerrors "github.com/pkg/errors"
)

type chunkedParserState uint8

const (
	eChunkLength chunkedParserState = iota
	eChunkExt
	eChunkLengthCR
	eChunkBody
	eChunkBodyDone
	eChunkBodyCRLF
	eChunkTrailer
)

// maxChunkLengthDigits limits the chunk length to what fits into uint64.
const maxChunkLengthDigits = 64 / 4

// ChunkedParser decodes a chunked transfer-coded body, including its trailer section.
type ChunkedParser struct {
	state        chunkedParserState
	lengthDigits uint8
	chunkLength  uint64
	trailers     *HeadDecoder
}

func NewChunkedParser(cfg *config.Config) *ChunkedParser {
	return &ChunkedParser{
		state:    eChunkLength,
		trailers: NewTrailerDecoder(cfg),
	}
}

// Parse returns a chunk when it's ready, nil otherwise. The returned extra must be fed
// back into the parser, unless io.EOF is returned, which signals that the body is complete
// and extra belongs to whatever follows the body.
func (c *ChunkedParser) Parse(data []byte) (chunk, extra []byte, err error) {
	if len(data) == 0 {
		return nil, nil, nil
	}

	switch c.state {
	case eChunkLength:
		goto chunkLength
	case eChunkExt:
		goto chunkExt
	case eChunkLengthCR:
		goto chunkLengthCR
	case eChunkBody:
		goto chunkBody
	case eChunkBodyDone:
		goto chunkBodyDone
	case eChunkBodyCRLF:
		goto chunkBodyCRLF
	case eChunkTrailer:
		goto trailer
	default:
		panic("unreachable code")
	}

chunkLength:
	for i := 0; i < len(data); i++ {
		switch char := data[i]; char {
		case '\r':
			if c.lengthDigits == 0 {
				return nil, nil, pkgerrors.Wrap(errors.ErrMalformedChunk, "empty chunk length")
			}

			data = data[i+1:]
			goto chunkLengthCR
		case '\n':
			if c.lengthDigits == 0 {
				return nil, nil, pkgerrors.Wrap(errors.ErrMalformedChunk, "empty chunk length")
			}

			data = data[i:]
			goto chunkLengthCR
		case ';':
			if c.lengthDigits == 0 {
				return nil, nil, pkgerrors.Wrap(errors.ErrMalformedChunk, "empty chunk length")
			}

			data = data[i+1:]
			goto chunkExt
		default:
			val := hexconv.Halfbyte[char]
			if val == 0xFF {
				return nil, nil, pkgerrors.Wrapf(errors.ErrMalformedChunk, "bad chunk length character %q", char)
			}

			c.chunkLength = (c.chunkLength << 4) | uint64(val)
			if c.lengthDigits++; c.lengthDigits > maxChunkLengthDigits {
				return nil, nil, pkgerrors.Wrap(errors.ErrMalformedChunk, "chunk length is too long")
			}
		}
	}

	c.state = eChunkLength
	return nil, nil, nil

chunkExt:
	{
		// chunk extensions aren't supported, therefore completely ignored.
		boundary := bytes.IndexByte(data, '\n')
		if boundary == -1 {
			c.state = eChunkExt
			return nil, nil, nil
		}

		data = data[boundary+1:]
		goto chunkData
	}

chunkLengthCR:
	if len(data) == 0 {
		c.state = eChunkLengthCR
		return nil, nil, nil
	}

	if data[0] != '\n' {
		return nil, nil, pkgerrors.Wrap(errors.ErrMalformedChunk, "chunk length line isn't terminated")
	}

	data = data[1:]
	goto chunkData

chunkData:
	c.lengthDigits = 0
	if c.chunkLength == 0 {
		goto trailer
	}

	goto chunkBody

chunkBody:
	if len(data) == 0 {
		c.state = eChunkBody
		return nil, nil, nil
	}

	{
		n := min(c.chunkLength, uint64(len(data)))
		c.chunkLength -= n
		chunk = data[:n]

		if c.chunkLength == 0 {
			c.state = eChunkBodyDone
		} else {
			c.state = eChunkBody
		}

		return chunk, data[n:], nil
	}

chunkBodyDone:
	switch data[0] {
	case '\r':
		data = data[1:]
		goto chunkBodyCRLF
	case '\n':
		data = data[1:]
		goto chunkLength
	default:
		return nil, nil, pkgerrors.Wrap(errors.ErrMalformedChunk, "chunk data isn't terminated")
	}

chunkBodyCRLF:
	if len(data) == 0 {
		c.state = eChunkBodyCRLF
		return nil, nil, nil
	}

	if data[0] != '\n' {
		return nil, nil, pkgerrors.Wrap(errors.ErrMalformedChunk, "chunk data isn't terminated")
	}

	data = data[1:]
	goto chunkLength

trailer:
	{
		done, extra, err := c.trailers.Parse(data)
		if err != nil {
			return nil, nil, err
		}

		if !done {
			c.state = eChunkTrailer
			return nil, nil, nil
		}

		c.state = eChunkLength
		return nil, extra, io.EOF
	}
}

// Trailers returns the trailer fields of the last completed body.
func (c *ChunkedParser) Trailers() *headers.Headers {
	return c.trailers.Headers()
}

// Reset prepares the parser for a new body, discarding the trailers.
func (c *ChunkedParser) Reset() {
	c.state = eChunkLength
	c.lengthDigits = 0
	c.chunkLength = 0
	c.trailers.Reset()
}
