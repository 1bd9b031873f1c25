// Package dispatch implements a routing and request-dispatch engine:
// it matches requests to actions, binds typed parameters, runs ordered
// pipe chains around handlers, and generates paths back from action
// identities.
//
// Routes are collected by a Builder and frozen into an immutable Table at
// startup. After Build the table is safe to share across any number of
// concurrent requests without locking.
//
// # Registration
//
// Routes can be registered explicitly or derived from action identities:
//
//	b := dispatch.NewBuilder()
//	b.Register(http.MethodGet, "/healthz", "Health::Check")
//	b.Route("Users::Show")                  // GET /users/:id
//	b.NestedRoute("Projects::Users::Index") // GET /projects/:project_id/users
//	table, err := b.Build()
//
// An action identity is a "::"-separated name: the last segment is the
// verb, the second-to-last the resource, anything before is namespace.
// The verb decides method and path shape:
//
//	Index   GET     /resource
//	Show    GET     /resource/:id
//	New     GET     /resource/new
//	Create  POST    /resource
//	Edit    GET     /resource/:id/edit
//	Update  PUT     /resource/:id
//	Delete  DELETE  /resource/:id
//
// Identity segments convert to snake_case path segments, so
// MyAdminSection::Users::Show registers GET /my_admin_section/users/:id.
// Nested identities read the third-to-last segment as the parent
// resource and prefix /parent/:parent_id; only one nesting level is
// derivable, deeper trees are registered explicitly.
//
// # Patterns and matching
//
// Path templates contain literal segments and single-segment named
// parameters ("/users/:id"). Matching is positional: segment counts must
// be equal, literals compare exactly, a parameter captures its segment
// verbatim and never crosses a slash.
//
// When two patterns could match the same request, a literal segment beats
// a parameter at the first position where the patterns differ; remaining
// ties keep registration order. The ordering is fixed once at Build, so
// the winner for any request never changes for the process lifetime.
//
// # Actions and pipes
//
// An action bundles a handler with before- and after-pipes:
//
//	b.Action(dispatch.ActionConfig{
//		ID:      "Users::Show",
//		Before:  []dispatch.Pipe{requireSession},
//		Handler: showUser,
//		Queries: []dispatch.QuerySpec{
//			{Name: "page", Type: dispatch.TypeInt, Default: 1},
//		},
//	})
//
// A pipe returns Continue() or Terminal(resp). A Terminal from a
// before-pipe ends the dispatch immediately: later before-pipes, the
// handler and all after-pipes are skipped. After-pipes always run once
// the handler has produced a response; a Terminal from one replaces the
// response and the chain continues with the replacement.
//
// Shared pipes compose through Base templates (ancestor chains) and named
// PipeSets (mixins). The effective before order is base lineage
// outermost-first, then pipe sets in declared order, then the action's
// own pipes; the after order is the exact mirror.
//
// # Parameter binding
//
// Path parameters are raw strings, available via Params.Path. Query
// parameters are declared with QuerySpec and bound by type: present
// values are coerced (failure is an InvalidParamError carrying the name
// and raw value), absent values fall back to the default, absent
// required values without a default are a MissingParamError, and absent
// optional values are simply unbound. The built-in types are text, int
// and bool; register more on a TypeRegistry and pass it with WithTypes.
//
// # Reverse routing
//
//	path, err := table.Path("Users::Show", map[string]string{"id": "42"})
//	// "/users/42"
//	target, err := table.Route("Users::Show", map[string]string{"id": "42"})
//	// {Method: "GET", Path: "/users/42"}
//
// Parameter values are percent-encoded to stay within their segment.
// A missing binding is a MissingParamError; that is caller misuse, not a
// request-time condition.
//
// # Serving
//
// NewHandler adapts a table to net/http and owns the boundary concerns:
// ErrNoRoute becomes 404, binding failures become 400, and panics from
// pipes or handlers (which Dispatch itself never swallows) are
// recovered, logged via slog and answered with 500:
//
//	http.ListenAndServe(":8080", dispatch.NewHandler(table))
package dispatch
