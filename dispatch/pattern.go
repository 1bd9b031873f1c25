package dispatch

import (
	"fmt"
	"net/url"
	"strings"
)

// segmentKind distinguishes literal path segments from named parameters.
type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentParam
)

// segment is one element of a parsed pattern. For literals, value is the
// exact text to match; for params, value is the parameter name.
type segment struct {
	kind  segmentKind
	value string
}

// Pattern is a parsed path template. Templates consist of literal segments
// and single-segment named parameters marked with a leading colon:
//
//	/users/:id
//	/projects/:project_id/users
//
// A parameter matches exactly one path segment and never spans a slash.
// There is no wildcard or regexp syntax.
type Pattern struct {
	template string
	segments []segment
	params   []string
}

// ParsePattern parses a path template. The template must start with "/".
// Parameter names must be non-empty and unique within the template.
func ParsePattern(tpl string) (*Pattern, error) {
	if tpl == "" || tpl[0] != '/' {
		return nil, fmt.Errorf("dispatch: pattern %q must start with /", tpl)
	}

	p := &Pattern{template: tpl}

	seen := make(map[string]bool)
	for _, raw := range splitPath(tpl) {
		if strings.HasPrefix(raw, ":") {
			name := raw[1:]
			if name == "" {
				return nil, fmt.Errorf("dispatch: missing parameter name in pattern %q", tpl)
			}
			if seen[name] {
				return nil, fmt.Errorf("dispatch: duplicated parameter %q in pattern %q", name, tpl)
			}
			seen[name] = true
			p.segments = append(p.segments, segment{kind: segmentParam, value: name})
			p.params = append(p.params, name)
			continue
		}
		p.segments = append(p.segments, segment{kind: segmentLiteral, value: raw})
	}

	return p, nil
}

// MustParsePattern is like ParsePattern but panics on error. Intended for
// patterns known at compile time.
func MustParsePattern(tpl string) *Pattern {
	p, err := ParsePattern(tpl)
	if err != nil {
		panic(err)
	}
	return p
}

// Template returns the original template string.
func (p *Pattern) Template() string {
	return p.template
}

// Params returns the parameter names in template order.
func (p *Pattern) Params() []string {
	out := make([]string, len(p.params))
	copy(out, p.params)
	return out
}

// hasParam reports whether the pattern declares the named parameter.
func (p *Pattern) hasParam(name string) bool {
	for _, n := range p.params {
		if n == name {
			return true
		}
	}
	return false
}

// match compares the request path against the pattern segment by segment.
// Segment counts must be equal; literals compare case-sensitively with no
// normalization; a parameter captures the request segment verbatim.
// Returns the captures and whether the path matched.
func (p *Pattern) match(path string) (map[string]string, bool) {
	segs := splitPath(path)
	if len(segs) != len(p.segments) {
		return nil, false
	}

	var vars map[string]string
	for i, s := range p.segments {
		switch s.kind {
		case segmentLiteral:
			if segs[i] != s.value {
				return nil, false
			}
		case segmentParam:
			if vars == nil {
				vars = make(map[string]string, len(p.params))
			}
			vars[s.value] = segs[i]
		}
	}

	return vars, true
}

// build substitutes the supplied bindings into the pattern, producing a
// request path. Literal segments are emitted verbatim; parameter values
// are percent-encoded so they stay within their segment per RFC 3986
// Section 3.3. A parameter with no binding is a MissingParamError.
func (p *Pattern) build(vars map[string]string) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}

	var sb strings.Builder
	for _, s := range p.segments {
		sb.WriteByte('/')
		switch s.kind {
		case segmentLiteral:
			sb.WriteString(s.value)
		case segmentParam:
			v, ok := vars[s.value]
			if !ok {
				return "", &MissingParamError{Name: s.value}
			}
			sb.WriteString(url.PathEscape(v))
		}
	}

	return sb.String(), nil
}

// shapeKey returns a string identifying the pattern's segment shape:
// literal text for literal segments, ":" for parameters. Two patterns with
// the same shape would shadow each other regardless of parameter names, so
// this is the key used for duplicate detection.
func (p *Pattern) shapeKey() string {
	var sb strings.Builder
	for _, s := range p.segments {
		sb.WriteByte('/')
		if s.kind == segmentParam {
			sb.WriteByte(':')
		} else {
			sb.WriteString(s.value)
		}
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}

// moreSpecific compares two patterns for match precedence. It reports a
// negative value when p sorts before other, positive for the reverse, and
// zero when neither wins. Patterns of different lengths never compete for
// the same request, so they order by segment count alone; treating them
// as ties instead would make incomparability intransitive and let a sort
// interleave competing patterns incorrectly. Equal-length patterns order
// by the first position where one has a literal segment and the other a
// parameter: the literal side wins.
func (p *Pattern) moreSpecific(other *Pattern) int {
	if d := len(p.segments) - len(other.segments); d != 0 {
		return d
	}
	for i := range p.segments {
		a, b := p.segments[i].kind, other.segments[i].kind
		if a != b {
			if a == segmentLiteral {
				return -1
			}
			return 1
		}
	}
	return 0
}

// splitPath splits a path into segments, ignoring the leading slash and a
// single trailing slash. "/users/42" and "/users/42/" yield the same
// segments; the root path yields none.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
