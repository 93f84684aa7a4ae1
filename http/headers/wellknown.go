package headers

// Names of the fields driving message framing. Lookups are case-insensitive, while the
// encoder uses the lowercase spelling when it has to introduce a field itself.
const (
	ContentLength    = "content-length"
	TransferEncoding = "transfer-encoding"
	Trailer          = "trailer"
)
