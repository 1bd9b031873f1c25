package dispatch

import "context"

// Ctx is the per-request value handed to pipes and handlers. It is owned
// by a single dispatch and must not be retained after the chain returns.
type Ctx struct {
	ctx      context.Context
	request  *Request
	params   *Params
	actionID string

	// response is set while after-pipes run; nil before the handler.
	response *Response

	values map[string]any
}

// Context returns the request-scoped context for I/O performed by pipes
// and handlers.
func (c *Ctx) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Request returns the request being dispatched.
func (c *Ctx) Request() *Request {
	return c.request
}

// Params returns the bound path and query parameters.
func (c *Ctx) Params() *Params {
	return c.params
}

// ActionID returns the id of the action being dispatched.
func (c *Ctx) ActionID() string {
	return c.actionID
}

// Response returns the current response while after-pipes run. Before the
// handler has produced one it reports false.
func (c *Ctx) Response() (Response, bool) {
	if c.response == nil {
		return Response{}, false
	}
	return *c.response, true
}

// Set stores a request-scoped value, visible to later pipes and the
// handler. Keys should be namespaced ("pipes.request_id") to avoid
// collisions between pipe packages.
func (c *Ctx) Set(key string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
}

// Get returns a request-scoped value stored with Set.
func (c *Ctx) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}
