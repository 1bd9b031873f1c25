package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Entry is one immutable route table row.
type Entry struct {
	Method   string
	Pattern  *Pattern
	ActionID string
}

// Match is the result of a successful table lookup: the winning entry and
// the raw captures for its parameters.
type Match struct {
	Entry Entry
	Vars  map[string]string
}

// Builder accumulates registrations and produces an immutable Table.
// Registration errors are collected and reported together by Build, so
// call sites can chain registrations without per-call error handling, the
// same way route configuration chains elsewhere in this module's lineage.
// Builders are not safe for concurrent use; build the table once during
// startup.
type Builder struct {
	entries []Entry
	actions map[string]ActionConfig
	types   *TypeRegistry
	errs    []error
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTypes replaces the default type registry used for query coercion.
func WithTypes(types *TypeRegistry) BuilderOption {
	return func(b *Builder) {
		b.types = types
	}
}

// NewBuilder returns an empty route table builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		actions: make(map[string]ActionConfig),
		types:   NewTypeRegistry(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds an explicit route entry.
func (b *Builder) Register(method, template, actionID string) *Builder {
	pattern, err := ParsePattern(template)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.entries = append(b.entries, Entry{
		Method:   strings.ToUpper(method),
		Pattern:  pattern,
		ActionID: actionID,
	})
	return b
}

// Route derives and adds an entry from a plain action identity.
// See DeriveRoute for the derivation rules.
func (b *Builder) Route(actionID string) *Builder {
	entry, err := DeriveRoute(actionID)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.entries = append(b.entries, entry)
	return b
}

// NestedRoute derives and adds an entry from a nested action identity.
// See DeriveNestedRoute for the derivation rules.
func (b *Builder) NestedRoute(actionID string) *Builder {
	entry, err := DeriveNestedRoute(actionID)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.entries = append(b.entries, entry)
	return b
}

// Action attaches a handler, pipes and parameter specs to an action id.
// Attaching the same id twice is a build error.
func (b *Builder) Action(cfg ActionConfig) *Builder {
	if cfg.ID == "" {
		b.errs = append(b.errs, errors.New("dispatch: action config needs an ID"))
		return b
	}
	if _, dup := b.actions[cfg.ID]; dup {
		b.errs = append(b.errs, fmt.Errorf("dispatch: action %q configured twice", cfg.ID))
		return b
	}
	b.actions[cfg.ID] = cfg
	return b
}

// Build validates the accumulated registrations and freezes them into an
// immutable Table. It fails on any registration error, on duplicate
// (method, pattern) pairs, on query specs naming unknown types, and on
// declared path parameters missing from a registered pattern.
//
// Entries are ordered here, once: literal segments take precedence over
// parameters at the first position where two patterns differ, remaining
// ties keep registration order. Matching is then a first-match scan, so
// which handler wins for an ambiguous request is decided at build time
// and never changes.
func (b *Builder) Build() (*Table, error) {
	errs := make([]error, 0, len(b.errs))
	errs = append(errs, b.errs...)

	seen := make(map[string]bool, len(b.entries))
	for _, e := range b.entries {
		key := e.Method + " " + e.Pattern.shapeKey()
		if seen[key] {
			errs = append(errs, &DuplicateRouteError{Method: e.Method, Template: e.Pattern.Template()})
			continue
		}
		seen[key] = true
	}

	for id, cfg := range b.actions {
		if cfg.Handler == nil {
			errs = append(errs, fmt.Errorf("dispatch: action %q has no handler", id))
		}
		for _, spec := range cfg.Queries {
			if _, ok := b.types.lookup(spec.typeName()); !ok {
				errs = append(errs, fmt.Errorf("dispatch: action %q: query parameter %q has unknown type %q", id, spec.Name, spec.typeName()))
			}
		}
		if len(cfg.PathParams) > 0 {
			for _, e := range b.entries {
				if e.ActionID != id {
					continue
				}
				for _, name := range cfg.PathParams {
					if !e.Pattern.hasParam(name) {
						errs = append(errs, fmt.Errorf("dispatch: action %q declares path parameter %q missing from pattern %q", id, name, e.Pattern.Template()))
					}
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	t := &Table{
		entries: make([]Entry, len(b.entries)),
		byID:    make(map[string]Entry, len(b.entries)),
		actions: make(map[string]*action, len(b.actions)),
		types:   b.types,
	}
	copy(t.entries, b.entries)

	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].Pattern.moreSpecific(t.entries[j].Pattern) < 0
	})

	// Reverse routing resolves by registration order, not match order,
	// so the first registered entry per action id wins.
	for _, e := range b.entries {
		if _, ok := t.byID[e.ActionID]; !ok {
			t.byID[e.ActionID] = e
		}
	}

	for id, cfg := range b.actions {
		t.actions[id] = cfg.compile()
	}

	return t, nil
}

// MustBuild is like Build but panics on error. Intended for startup code
// where a bad route table should stop the process.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// Target is the reverse routing result carrying both path and method, for
// callers generating a form action or a redirect.
type Target struct {
	Method string
	Path   string
}

// Table is the immutable route table. Once built it is safe to share
// across concurrently handled requests without locking; nothing in
// matching, binding or dispatch mutates it.
type Table struct {
	entries []Entry
	byID    map[string]Entry
	actions map[string]*action
	types   *TypeRegistry
}

// Entries returns the table rows in match-precedence order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Match finds the entry for a request method and path, returning it with
// the raw parameter captures. Entries are scanned in the precedence order
// fixed at build time; the first match wins.
func (t *Table) Match(method, path string) (*Match, bool) {
	for _, e := range t.entries {
		if e.Method != method {
			continue
		}
		if vars, ok := e.Pattern.match(path); ok {
			return &Match{Entry: e, Vars: vars}, true
		}
	}
	return nil, false
}

// Path rebuilds the request path for an action from parameter bindings.
// A pattern parameter with no binding is a MissingParamError: reverse
// routing misuse is a programming error and callers should treat it as
// fatal.
func (t *Table) Path(actionID string, vars map[string]string) (string, error) {
	e, ok := t.byID[actionID]
	if !ok {
		return "", fmt.Errorf("dispatch: no route registered for action %q", actionID)
	}
	return e.Pattern.build(vars)
}

// Route is Path plus the entry's method, for callers that need both.
func (t *Table) Route(actionID string, vars map[string]string) (Target, error) {
	e, ok := t.byID[actionID]
	if !ok {
		return Target{}, fmt.Errorf("dispatch: no route registered for action %q", actionID)
	}
	path, err := e.Pattern.build(vars)
	if err != nil {
		return Target{}, err
	}
	return Target{Method: e.Method, Path: path}, nil
}

// Dispatch matches the request, binds its parameters and runs the
// action's pipe chain. Dispatch is stateless with respect to the table
// and safe to call from any number of goroutines at once.
//
// Errors: ErrNoRoute when nothing matches, MissingParamError and
// InvalidParamError from query binding, UnboundActionError when the
// matched entry has no attached action. Panics from pipes or handlers
// propagate to the caller untouched.
func (t *Table) Dispatch(ctx context.Context, req *Request) (Response, error) {
	m, ok := t.Match(req.Method, req.Path)
	if !ok {
		return Response{}, ErrNoRoute
	}

	act, ok := t.actions[m.Entry.ActionID]
	if !ok {
		return Response{}, &UnboundActionError{ActionID: m.Entry.ActionID}
	}

	query, err := bindQuery(act.queries, req.Query, t.types)
	if err != nil {
		return Response{}, err
	}

	c := &Ctx{
		ctx:      ctx,
		request:  req,
		params:   &Params{path: m.Vars, query: query},
		actionID: act.id,
	}

	return runChain(c, act.before, act.handler, act.after), nil
}
