package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		expectErr bool
		params    []string
	}{
		{name: "root", template: "/", params: nil},
		{name: "literal only", template: "/users", params: nil},
		{name: "single param", template: "/users/:id", params: []string{"id"}},
		{name: "mixed", template: "/projects/:project_id/users/:id", params: []string{"project_id", "id"}},
		{name: "trailing literal", template: "/users/:id/edit", params: []string{"id"}},
		{name: "missing leading slash", template: "users/:id", expectErr: true},
		{name: "empty", template: "", expectErr: true},
		{name: "empty param name", template: "/users/:", expectErr: true},
		{name: "duplicate param", template: "/a/:id/b/:id", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePattern(tt.template)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.template, p.Template())
			assert.Equal(t, tt.params, func() []string {
				if len(p.Params()) == 0 {
					return nil
				}
				return p.Params()
			}())
		})
	}
}

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		name     string
		template string
		path     string
		match    bool
		vars     map[string]string
	}{
		{name: "exact literal", template: "/users", path: "/users", match: true},
		{name: "root", template: "/", path: "/", match: true},
		{name: "param capture", template: "/users/:id", path: "/users/42", match: true, vars: map[string]string{"id": "42"}},
		{name: "two params", template: "/projects/:project_id/users/:id", path: "/projects/7/users/42", match: true, vars: map[string]string{"project_id": "7", "id": "42"}},
		{name: "trailing slash ignored", template: "/users/:id", path: "/users/42/", match: true, vars: map[string]string{"id": "42"}},
		{name: "segment count shorter", template: "/users/:id", path: "/users", match: false},
		{name: "segment count longer", template: "/users/:id", path: "/users/42/edit", match: false},
		{name: "literal mismatch", template: "/users/:id", path: "/posts/42", match: false},
		{name: "case sensitive literal", template: "/users", path: "/Users", match: false},
		{name: "param never spans slash", template: "/files/:name", path: "/files/a/b", match: false},
		{name: "param captures verbatim", template: "/users/:id", path: "/users/Not-An-Id", match: true, vars: map[string]string{"id": "Not-An-Id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustParsePattern(tt.template)
			vars, ok := p.match(tt.path)
			assert.Equal(t, tt.match, ok)
			if tt.match {
				assert.Equal(t, tt.vars, vars)
			}
		})
	}
}

func TestPatternBuild(t *testing.T) {
	t.Run("substitutes params", func(t *testing.T) {
		p := MustParsePattern("/users/:id/edit")
		path, err := p.build(map[string]string{"id": "42"})
		require.NoError(t, err)
		assert.Equal(t, "/users/42/edit", path)
	})

	t.Run("root", func(t *testing.T) {
		p := MustParsePattern("/")
		path, err := p.build(nil)
		require.NoError(t, err)
		assert.Equal(t, "/", path)
	})

	t.Run("missing binding fails", func(t *testing.T) {
		p := MustParsePattern("/users/:id")
		_, err := p.build(map[string]string{})
		var missing *MissingParamError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "id", missing.Name)
	})

	t.Run("escapes segment-unsafe values", func(t *testing.T) {
		p := MustParsePattern("/files/:name")
		path, err := p.build(map[string]string{"name": "a/b c"})
		require.NoError(t, err)
		assert.Equal(t, "/files/a%2Fb%20c", path)
	})
}

func TestPatternShapeKey(t *testing.T) {
	t.Run("param names do not change the shape", func(t *testing.T) {
		a := MustParsePattern("/users/:id")
		b := MustParsePattern("/users/:uid")
		assert.Equal(t, a.shapeKey(), b.shapeKey())
	})

	t.Run("literal and param shapes differ", func(t *testing.T) {
		a := MustParsePattern("/users/new")
		b := MustParsePattern("/users/:id")
		assert.NotEqual(t, a.shapeKey(), b.shapeKey())
	})
}

func TestPatternMoreSpecific(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "literal beats param", a: "/users/new", b: "/users/:id", want: -1},
		{name: "param loses to literal", a: "/users/:id", b: "/users/new", want: 1},
		{name: "identical shapes tie", a: "/users/:id", b: "/users/:uid", want: 0},
		{name: "first difference decides", a: "/a/:x/c", b: "/a/b/:y", want: 1},
		{name: "shorter sorts first", a: "/x", b: "/users/new", want: -1},
		{name: "longer sorts last", a: "/users/:id", b: "/x", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustParsePattern(tt.a)
			b := MustParsePattern(tt.b)
			assert.Equal(t, tt.want, a.moreSpecific(b))
		})
	}

	t.Run("transitive across lengths", func(t *testing.T) {
		// A short pattern between a param route and a competing literal
		// route must not break the chain: param > short and short < literal
		// would leave param and literal unordered if lengths tied as zero.
		param := MustParsePattern("/users/:id")
		short := MustParsePattern("/x")
		literal := MustParsePattern("/users/new")

		assert.Positive(t, param.moreSpecific(short))
		assert.Negative(t, short.moreSpecific(literal))
		assert.Positive(t, param.moreSpecific(literal))
	})
}
