package method

import (
	"github.com/indigo-web/h1codec/errors"
	"github.com/indigo-web/h1codec/internal/grammar"
)

// Method is a request method token. Methods are case-sensitive, so the original case is
// always preserved.
type Method string

// Methods registered with IANA.
// See: https://www.iana.org/assignments/http-methods/http-methods.xhtml
const (
	ACL               Method = "ACL"
	BASELINECONTROL   Method = "BASELINE-CONTROL"
	BIND              Method = "BIND"
	CHECKIN           Method = "CHECKIN"
	CHECKOUT          Method = "CHECKOUT"
	CONNECT           Method = "CONNECT"
	COPY              Method = "COPY"
	DELETE            Method = "DELETE"
	GET               Method = "GET"
	HEAD              Method = "HEAD"
	LABEL             Method = "LABEL"
	LINK              Method = "LINK"
	LOCK              Method = "LOCK"
	MERGE             Method = "MERGE"
	MKACTIVITY        Method = "MKACTIVITY"
	MKCALENDAR        Method = "MKCALENDAR"
	MKCOL             Method = "MKCOL"
	MKREDIRECTREF     Method = "MKREDIRECTREF"
	MKWORKSPACE       Method = "MKWORKSPACE"
	MOVE              Method = "MOVE"
	OPTIONS           Method = "OPTIONS"
	ORDERPATCH        Method = "ORDERPATCH"
	PATCH             Method = "PATCH"
	POST              Method = "POST"
	PRI               Method = "PRI"
	PROPFIND          Method = "PROPFIND"
	PROPPATCH         Method = "PROPPATCH"
	PUT               Method = "PUT"
	REBIND            Method = "REBIND"
	REPORT            Method = "REPORT"
	SEARCH            Method = "SEARCH"
	TRACE             Method = "TRACE"
	UNBIND            Method = "UNBIND"
	UNCHECKOUT        Method = "UNCHECKOUT"
	UNLINK            Method = "UNLINK"
	UNLOCK            Method = "UNLOCK"
	UPDATE            Method = "UPDATE"
	UPDATEREDIRECTREF Method = "UPDATEREDIRECTREF"
	VERSIONCONTROL    Method = "VERSION-CONTROL"
)

// List contains all the registered methods.
var List = []Method{
	ACL, BASELINECONTROL, BIND, CHECKIN, CHECKOUT, CONNECT, COPY, DELETE, GET, HEAD, LABEL,
	LINK, LOCK, MERGE, MKACTIVITY, MKCALENDAR, MKCOL, MKREDIRECTREF, MKWORKSPACE, MOVE,
	OPTIONS, ORDERPATCH, PATCH, POST, PRI, PROPFIND, PROPPATCH, PUT, REBIND, REPORT, SEARCH,
	TRACE, UNBIND, UNCHECKOUT, UNLINK, UNLOCK, UPDATE, UPDATEREDIRECTREF, VERSIONCONTROL,
}

// Parse validates the method token. Any token is accepted, not only the registered ones.
func Parse(str string) (Method, error) {
	if len(str) == 0 {
		return "", errors.NewTokenError(errors.Method, errors.Empty)
	}

	if pos := grammar.Token(str); pos != -1 {
		return "", errors.IllegalCharAt(errors.Method, pos)
	}

	return Method(str), nil
}

// Registered reports whether the method is registered with IANA.
func (m Method) Registered() bool {
	for _, method := range List {
		if m == method {
			return true
		}
	}

	return false
}

func (m Method) String() string {
	return string(m)
}
