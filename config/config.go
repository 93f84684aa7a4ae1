package config

type (
	StartLineSize struct {
		Default, Maximal int
	}

	HeadersNumber struct {
		Default, Maximal int
	}

	HeadersSpace struct {
		Default, Maximal int
	}
)

type (
	Head struct {
		// StartLine limits the request-line or status-line, excluding the line terminator.
		// Default is the initial capacity of the buffer accumulating a line split between
		// multiple reads, Maximal is the point after which the message is rejected with
		// errors.ErrHeadTooLarge.
		StartLine StartLineSize
		// Headers limits the header fields of the head.
		Headers Headers
	}

	Headers struct {
		// Number is the initial and the maximal number of header fields.
		Number HeadersNumber
		// Space limits the amount of memory occupied by all the header lines together.
		Space HeadersSpace
	}

	Body struct {
		// MaxSize describes the maximal size of a body that can be decoded. In order to
		// disable the setting, use the math.MaxInt64 value.
		MaxSize int64
		// ChunkSize is the maximal size of a single chunk emitted by the chunked encoder.
		ChunkSize int
		// Trailers limits the trailer fields of a chunked body the same way as Head.Headers
		// limits the header fields.
		Trailers Headers
	}
)

// Config holds limits and pre-allocations used by decoders and encoders.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Head Head
	Body Body
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Head: Head{
			StartLine: StartLineSize{
				Default: 1024,
				Maximal: 0xFFFF,
			},
			Headers: Headers{
				Number: HeadersNumber{
					Default: 10,
					Maximal: 100,
				},
				Space: HeadersSpace{
					Default: 1 * 1024,
					Maximal: 0xFFFF,
				},
			},
		},
		Body: Body{
			MaxSize:   512 * 1024 * 1024, // 512 megabytes
			ChunkSize: 16 * 1024,
			Trailers: Headers{
				Number: HeadersNumber{
					Default: 2,
					Maximal: 20,
				},
				Space: HeadersSpace{
					Default: 256,
					Maximal: 8 * 1024,
				},
			},
		},
	}
}
