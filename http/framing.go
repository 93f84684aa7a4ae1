package http

// Framing describes how the end of a message body is determined.
type Framing uint8

const (
	// None means the message carries no body at all.
	None Framing = iota
	// Fixed means the body length is known in advance and declared via Content-Length.
	Fixed
	// Chunked means the body is a sequence of size-prefixed chunks terminated by a
	// zero-length one.
	Chunked
	// UntilClose means the body extends up to the end of the stream. Responses only.
	UntilClose
)

func (f Framing) String() string {
	switch f {
	case None:
		return "none"
	case Fixed:
		return "fixed"
	case Chunked:
		return "chunked"
	case UntilClose:
		return "until-close"
	default:
		return "unknown"
	}
}
