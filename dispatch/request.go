package dispatch

import (
	"net/http"
	"net/url"
)

// Request is the engine's view of an incoming request. The engine itself
// reads only Method, Path and Query; Header rides along untouched for
// application pipes (auth, tracing ids) that need it.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// FromHTTP builds a Request from a net/http request. The query string is
// parsed once here; dispatch never re-parses it.
func FromHTTP(r *http.Request) *Request {
	return &Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header,
	}
}
