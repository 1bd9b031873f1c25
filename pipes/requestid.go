package pipes

import (
	"github.com/google/uuid"

	"github.com/vitalvas/strada/dispatch"
)

// HeaderRequestID is the default request id header, read from the request
// and stamped on the response.
const HeaderRequestID = "X-Request-ID"

// RequestIDKey is the Ctx value key under which the request id is stored
// for later pipes and the handler.
const RequestIDKey = "pipes.request_id"

// RequestIDConfig configures the RequestID pipe set.
type RequestIDConfig struct {
	// Header overrides HeaderRequestID.
	Header string

	// Generator produces ids when the request carries none.
	// Defaults to uuid.NewString.
	Generator func() string
}

// RequestID returns a pipe set that ensures every dispatch has a request
// id: the before half reuses the incoming header value or generates one,
// storing it under RequestIDKey; the after half stamps it on the
// response.
func RequestID(cfg RequestIDConfig) dispatch.PipeSet {
	header := cfg.Header
	if header == "" {
		header = HeaderRequestID
	}

	generate := cfg.Generator
	if generate == nil {
		generate = uuid.NewString
	}

	return dispatch.PipeSet{
		Name: "request_id",
		Before: []dispatch.Pipe{
			func(c *dispatch.Ctx) dispatch.Result {
				id := ""
				if req := c.Request(); req != nil && req.Header != nil {
					id = req.Header.Get(header)
				}
				if id == "" {
					id = generate()
				}
				c.Set(RequestIDKey, id)
				return dispatch.Continue()
			},
		},
		After: []dispatch.Pipe{
			func(c *dispatch.Ctx) dispatch.Result {
				resp, ok := c.Response()
				if !ok {
					return dispatch.Continue()
				}
				id, _ := c.Get(RequestIDKey)
				s, _ := id.(string)
				if s == "" {
					return dispatch.Continue()
				}
				return dispatch.Terminal(resp.WithHeader(header, s))
			},
		},
	}
}

// CtxRequestID returns the request id stored by the RequestID pipe, or ""
// when the pipe did not run.
func CtxRequestID(c *dispatch.Ctx) string {
	if v, ok := c.Get(RequestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
