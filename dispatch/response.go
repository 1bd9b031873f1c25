package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the opaque value produced by handlers and terminal pipes.
// The engine never inspects it beyond carrying it through the after-pipe
// chain; the boundary adapter writes it to the wire.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// NewResponse returns a response with the given status and body and an
// initialized header map.
func NewResponse(status int, body []byte) Response {
	return Response{
		Status: status,
		Header: make(http.Header),
		Body:   body,
	}
}

// Text returns a plain text response.
func Text(status int, body string) Response {
	resp := NewResponse(status, []byte(body))
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// JSON returns a JSON response. When encoding fails the response is a 500
// with a plain text body, so a handler can return JSON(...) directly
// without an error branch.
func JSON(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		return Text(http.StatusInternalServerError, fmt.Sprintf("json encoding failed: %v", err))
	}
	resp := NewResponse(status, body)
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

// WithHeader returns a copy of the response with the header set. The
// header map is cloned so terminal pipes can derive a new response
// without mutating the one earlier pipes saw.
func (r Response) WithHeader(key, value string) Response {
	out := r
	out.Header = r.Header.Clone()
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	out.Header.Set(key, value)
	return out
}
