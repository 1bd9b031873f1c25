package dispatch

import (
	"fmt"
	"net/url"
	"strconv"
)

// Built-in coercion type names.
const (
	TypeText = "text"
	TypeInt  = "int"
	TypeBool = "bool"
)

// Coercer converts a raw query value into a typed one.
type Coercer func(raw string) (any, error)

// TypeRegistry maps type names to coercers. Query specs reference types
// by name, so applications can register their own coercers (dates, ids,
// enums) and use them in specs without touching the binder.
type TypeRegistry struct {
	coercers map[string]Coercer
}

// NewTypeRegistry returns a registry with the built-in types registered:
// text (identity), int (base-10 integer) and bool (strconv.ParseBool
// forms: 1/0, t/f, true/false).
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{coercers: make(map[string]Coercer)}

	r.Register(TypeText, func(raw string) (any, error) {
		return raw, nil
	})
	r.Register(TypeInt, func(raw string) (any, error) {
		return strconv.Atoi(raw)
	})
	r.Register(TypeBool, func(raw string) (any, error) {
		return strconv.ParseBool(raw)
	})

	return r
}

// Register adds or replaces a named coercer.
func (r *TypeRegistry) Register(name string, fn Coercer) {
	r.coercers[name] = fn
}

func (r *TypeRegistry) lookup(name string) (Coercer, bool) {
	fn, ok := r.coercers[name]
	return fn, ok
}

// QuerySpec declares a typed query parameter for an action. Type names
// resolve against the table's TypeRegistry; an empty Type means text.
// Required and Default interact per the binding rules on bindQuery.
type QuerySpec struct {
	Name     string
	Type     string
	Required bool
	Default  any
}

func (s QuerySpec) typeName() string {
	if s.Type == "" {
		return TypeText
	}
	return s.Type
}

// Params carries the bound parameters of one request. Path values are the
// raw captured strings; query values are typed per their specs. Absent
// optional query parameters simply have no entry.
type Params struct {
	path  map[string]string
	query map[string]any
}

// Path returns the raw captured value of a path parameter. Path
// parameters are always present when declared in the matched pattern, so
// a missing name returns the empty string.
func (p *Params) Path(name string) string {
	return p.path[name]
}

// Query returns the typed value of a query parameter and whether it was
// bound. Optional parameters with no default and no request value report
// false.
func (p *Params) Query(name string) (any, bool) {
	v, ok := p.query[name]
	return v, ok
}

// QueryText returns a text query parameter, or "" when unbound.
func (p *Params) QueryText(name string) string {
	if v, ok := p.query[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// QueryInt returns an int query parameter, or 0 when unbound.
func (p *Params) QueryInt(name string) int {
	if v, ok := p.query[name]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

// QueryBool returns a bool query parameter, or false when unbound.
func (p *Params) QueryBool(name string) bool {
	if v, ok := p.query[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// bindQuery binds request query values against the declared specs:
//
//   - present and parseable: the coerced value
//   - present but unparseable: InvalidParamError with name and raw value
//   - absent with a default: the default
//   - absent, optional, no default: no entry
//   - absent, required, no default: MissingParamError
//
// Spec types are validated at build time, so an unknown type here is a
// table construction bug and panics.
func bindQuery(specs []QuerySpec, values url.Values, types *TypeRegistry) (map[string]any, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	bound := make(map[string]any, len(specs))
	for _, spec := range specs {
		if !values.Has(spec.Name) {
			switch {
			case spec.Default != nil:
				bound[spec.Name] = spec.Default
			case spec.Required:
				return nil, &MissingParamError{Name: spec.Name}
			}
			continue
		}

		raw := values.Get(spec.Name)
		coerce, ok := types.lookup(spec.typeName())
		if !ok {
			panic(fmt.Sprintf("dispatch: unknown parameter type %q escaped build validation", spec.typeName()))
		}

		v, err := coerce(raw)
		if err != nil {
			return nil, &InvalidParamError{Name: spec.Name, Value: raw, Type: spec.typeName(), Err: err}
		}
		bound[spec.Name] = v
	}

	return bound, nil
}
