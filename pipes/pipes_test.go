package pipes

import (
	"context"
	"net/http"

	"github.com/vitalvas/strada/dispatch"
)

// dispatchWith builds a one-action table around the given pipe sets and
// dispatches a request through it.
func dispatchWith(sets []dispatch.PipeSet, before []dispatch.Pipe, req *dispatch.Request) (dispatch.Response, error) {
	b := dispatch.NewBuilder()
	b.Register(http.MethodGet, "/ping", "Ping::Check")
	b.Action(dispatch.ActionConfig{
		ID:       "Ping::Check",
		PipeSets: sets,
		Before:   before,
		Handler: func(*dispatch.Ctx) dispatch.Response {
			return dispatch.Text(http.StatusOK, "pong")
		},
	})

	table, err := b.Build()
	if err != nil {
		return dispatch.Response{}, err
	}

	if req == nil {
		req = &dispatch.Request{Method: http.MethodGet, Path: "/ping"}
	}
	return table.Dispatch(context.Background(), req)
}
