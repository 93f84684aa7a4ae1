package h1codec

import (
	"github.com/indigo-web/h1codec/config"
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/http"
	pkgerrors "github.com/pkg/errors"
)

// UnmarshalRequest decodes a single request, treating data as the whole stream. The bytes
// following the request are returned as extra.
func UnmarshalRequest(data []byte) (request *http.Request, extra []byte, err error) {
	d := NewRequestDecoder(config.Default())
	done, extra, err := d.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	if !done {
		if done, err = d.EOF(); err != nil {
			return nil, nil, err
		}

		if !done {
			return nil, nil, pkgerrors.Wrap(errors.ErrUnexpectedEOF, "no request")
		}
	}

	return d.Request(), extra, nil
}

// UnmarshalResponse does the same as UnmarshalRequest, but for responses. A response
// without framing fields takes the rest of data as its body.
func UnmarshalResponse(data []byte) (response *http.Response, extra []byte, err error) {
	d := NewResponseDecoder(config.Default())
	done, extra, err := d.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	if !done {
		if done, err = d.EOF(); err != nil {
			return nil, nil, err
		}

		if !done {
			return nil, nil, pkgerrors.Wrap(errors.ErrUnexpectedEOF, "no response")
		}
	}

	return d.Response(), extra, nil
}
