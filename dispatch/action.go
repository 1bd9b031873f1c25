package dispatch

// Base is a reusable pipe template that actions extend by composition.
// It replaces what a class hierarchy would express with inherited
// callbacks: a chain of bases contributes before-pipes outermost ancestor
// first, and after-pipes in mirror order, outermost ancestor last.
type Base struct {
	parent *Base
	before []Pipe
	after  []Pipe
}

// NewBase returns a root base template.
func NewBase(before, after []Pipe) *Base {
	return &Base{before: before, after: after}
}

// Extend returns a child base. The child's pipes compose inside the
// parent's: parent before-pipes run first, parent after-pipes run last.
func (b *Base) Extend(before, after []Pipe) *Base {
	return &Base{parent: b, before: before, after: after}
}

// lineage returns the base chain outermost ancestor first.
func (b *Base) lineage() []*Base {
	var chain []*Base
	for cur := b; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	// reverse so the outermost ancestor comes first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// PipeSet is a named, reusable bundle of pipes, the explicit form of
// mixin-contributed filters. Sets compose in the order an action lists
// them.
type PipeSet struct {
	Name   string
	Before []Pipe
	After  []Pipe
}

// ActionConfig declares an action: its identity, handler, pipes and
// parameter specs. It is attached to a Builder with Builder.Action and
// compiled into its effective form at Build time.
type ActionConfig struct {
	// ID is the action identity the route table dispatches by,
	// e.g. "Admin::Users::Show".
	ID string

	// Handler produces the terminal response once before-pipes allow
	// the chain to reach it.
	Handler HandlerFunc

	// Base is the optional ancestor template the action extends.
	Base *Base

	// PipeSets are mixin bundles, composed in this order between the
	// base pipes and the action's own.
	PipeSets []PipeSet

	// Before and After are the action's own pipes.
	Before []Pipe
	After  []Pipe

	// Queries declares the typed query parameters bound before the
	// chain runs.
	Queries []QuerySpec

	// PathParams optionally documents the path parameters the handler
	// expects. When set, Build verifies each one appears in every
	// pattern registered for this action; a mismatch is a build error,
	// never a per-request one.
	PathParams []string
}

// action is the compiled form: effective pipe lists flattened once at
// build time so dispatch does no composition work per request.
type action struct {
	id      string
	handler HandlerFunc
	before  []Pipe
	after   []Pipe
	queries []QuerySpec
}

// compile flattens the declared composition into effective pipe lists.
//
// Effective before order: base lineage outermost-first, then pipe sets in
// declared order, then the action's own before-pipes. Effective after
// order is the mirror: own after-pipes, then pipe sets in reverse order,
// then base lineage outermost-last. Each layer wraps the ones declared
// after it.
func (cfg ActionConfig) compile() *action {
	a := &action{
		id:      cfg.ID,
		handler: cfg.Handler,
		queries: cfg.Queries,
	}

	var lineage []*Base
	if cfg.Base != nil {
		lineage = cfg.Base.lineage()
	}

	for _, b := range lineage {
		a.before = append(a.before, b.before...)
	}
	for _, set := range cfg.PipeSets {
		a.before = append(a.before, set.Before...)
	}
	a.before = append(a.before, cfg.Before...)

	a.after = append(a.after, cfg.After...)
	for i := len(cfg.PipeSets) - 1; i >= 0; i-- {
		a.after = append(a.after, cfg.PipeSets[i].After...)
	}
	for i := len(lineage) - 1; i >= 0; i-- {
		a.after = append(a.after, lineage[i].after...)
	}

	return a
}
