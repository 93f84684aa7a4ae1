// Command h1dump decodes raw HTTP/1.x messages and prints them as JSON, one per line.
//
// Usage:
//
//	h1dump [-response] [-head] [-fragment n] [file]
//
// The input is read from the file, or from stdin if none is given, in fragments of at most
// n bytes, each fed to the decoder as is. Pipelined messages are all printed.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/indigo-web/h1codec"
	"github.com/indigo-web/h1codec/config"
	"github.com/indigo-web/h1codec/dump"
)

type messageDecoder interface {
	Parse(data []byte) (done bool, extra []byte, err error)
	EOF() (done bool, err error)
}

func main() {
	var (
		isResponse = flag.Bool("response", false, "decode responses instead of requests")
		headOnly   = flag.Bool("head", false, "the response answers a HEAD request, so it has no body")
		fragment   = flag.Int("fragment", 4096, "maximal number of bytes fed to the decoder at once")
		maxBody    = flag.Int64("max-body", config.Default().Body.MaxSize, "maximal body size")
	)
	flag.Parse()

	input := io.Reader(os.Stdin)
	if path := flag.Arg(0); len(path) > 0 {
		file, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}

		defer file.Close()
		input = file
	}

	if *fragment <= 0 {
		log.Fatalf("fragment size must be positive, got %d", *fragment)
	}

	cfg := config.Default()
	cfg.Body.MaxSize = *maxBody

	var (
		decoder messageDecoder
		emit    func() error
	)

	if *isResponse {
		d := h1codec.NewResponseDecoder(cfg)
		if *headOnly {
			d.ExpectNoBody()
		}

		decoder = d
		emit = func() error {
			return dump.WriteResponse(os.Stdout, d.Response())
		}
	} else {
		d := h1codec.NewRequestDecoder(cfg)
		decoder = d
		emit = func() error {
			return dump.WriteRequest(os.Stdout, d.Request())
		}
	}

	if err := run(input, make([]byte, *fragment), decoder, emit); err != nil {
		log.Fatal(err)
	}
}

func run(input io.Reader, buff []byte, decoder messageDecoder, emit func() error) error {
	for {
		n, err := input.Read(buff)
		for data := buff[:n]; len(data) > 0; {
			done, extra, perr := decoder.Parse(data)
			if perr != nil {
				return perr
			}

			if !done {
				break
			}

			if perr = emit(); perr != nil {
				return perr
			}

			data = extra
		}

		switch err {
		case nil:
		case io.EOF:
			done, eerr := decoder.EOF()
			if eerr != nil {
				return eerr
			}

			if done {
				return emit()
			}

			return nil
		default:
			return err
		}
	}
}
