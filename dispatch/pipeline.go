package dispatch

// Result is what a pipe returns: either Continue, letting the chain
// proceed, or Terminal, carrying a response.
type Result struct {
	terminal bool
	response Response
}

// Continue lets the chain proceed to the next pipe or the handler.
func Continue() Result {
	return Result{}
}

// Terminal stops a before-chain with the given response, or replaces the
// current response in an after-chain.
func Terminal(resp Response) Result {
	return Result{terminal: true, response: resp}
}

// Pipe is a before/after filter attached to an action.
type Pipe func(*Ctx) Result

// HandlerFunc is an action body. Unlike pipes it is not part of the
// Continue/Terminal protocol: once reached it always produces the
// terminal response.
type HandlerFunc func(*Ctx) Response

// runChain executes before-pipes, the handler and after-pipes in order.
//
// A Terminal from a before-pipe stops everything: no further before-pipe,
// no handler, no after-pipe runs, and its response is final. After-pipes
// always see the current response via ctx; a Terminal from one replaces
// the response and the chain continues with the replacement. Pipes run
// strictly sequentially on the calling goroutine, so blocking inside one
// can never let a later pipe run out of order. Panics are not recovered
// here; the boundary owning the dispatch decides what a crash becomes.
func runChain(c *Ctx, before []Pipe, handler HandlerFunc, after []Pipe) Response {
	for _, p := range before {
		if res := p(c); res.terminal {
			return res.response
		}
	}

	resp := handler(c)

	for _, p := range after {
		c.response = &resp
		if res := p(c); res.terminal {
			resp = res.response
		}
	}
	c.response = &resp

	return resp
}
