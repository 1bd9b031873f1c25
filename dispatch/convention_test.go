package dispatch

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRoute(t *testing.T) {
	tests := []struct {
		name     string
		actionID string
		method   string
		template string
	}{
		{name: "index", actionID: "Users::Index", method: http.MethodGet, template: "/users"},
		{name: "show", actionID: "Users::Show", method: http.MethodGet, template: "/users/:id"},
		{name: "new", actionID: "Users::New", method: http.MethodGet, template: "/users/new"},
		{name: "create", actionID: "Users::Create", method: http.MethodPost, template: "/users"},
		{name: "edit", actionID: "Users::Edit", method: http.MethodGet, template: "/users/:id/edit"},
		{name: "update", actionID: "Users::Update", method: http.MethodPut, template: "/users/:id"},
		{name: "delete", actionID: "Users::Delete", method: http.MethodDelete, template: "/users/:id"},
		{name: "namespaced", actionID: "Admin::Users::Show", method: http.MethodGet, template: "/admin/users/:id"},
		{name: "multi-word namespace", actionID: "MyAdminSection::Users::Show", method: http.MethodGet, template: "/my_admin_section/users/:id"},
		{name: "deep namespace", actionID: "Api::V1::Users::Index", method: http.MethodGet, template: "/api/v1/users"},
		{name: "multi-word resource", actionID: "BlogPosts::Index", method: http.MethodGet, template: "/blog_posts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := DeriveRoute(tt.actionID)
			require.NoError(t, err)
			assert.Equal(t, tt.method, entry.Method)
			assert.Equal(t, tt.template, entry.Pattern.Template())
			assert.Equal(t, tt.actionID, entry.ActionID)
		})
	}
}

func TestDeriveRouteErrors(t *testing.T) {
	tests := []struct {
		name     string
		actionID string
	}{
		{name: "no verb segment", actionID: "Users"},
		{name: "unknown verb", actionID: "Users::Destroy"},
		{name: "empty segment", actionID: "::Show"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveRoute(tt.actionID)
			assert.Error(t, err)
		})
	}
}

func TestDeriveNestedRoute(t *testing.T) {
	tests := []struct {
		name     string
		actionID string
		method   string
		template string
	}{
		{name: "index", actionID: "Projects::Users::Index", method: http.MethodGet, template: "/projects/:project_id/users"},
		{name: "show", actionID: "Projects::Users::Show", method: http.MethodGet, template: "/projects/:project_id/users/:id"},
		{name: "create", actionID: "Projects::Users::Create", method: http.MethodPost, template: "/projects/:project_id/users"},
		{name: "edit", actionID: "Projects::Users::Edit", method: http.MethodGet, template: "/projects/:project_id/users/:id/edit"},
		{name: "namespaced", actionID: "Admin::Projects::Users::Index", method: http.MethodGet, template: "/admin/projects/:project_id/users"},
		{name: "ies plural parent", actionID: "Categories::Posts::Index", method: http.MethodGet, template: "/categories/:category_id/posts"},
		{name: "es plural parent", actionID: "Boxes::Items::Index", method: http.MethodGet, template: "/boxes/:box_id/items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := DeriveNestedRoute(tt.actionID)
			require.NoError(t, err)
			assert.Equal(t, tt.method, entry.Method)
			assert.Equal(t, tt.template, entry.Pattern.Template())
		})
	}

	t.Run("needs three segments", func(t *testing.T) {
		_, err := DeriveNestedRoute("Users::Index")
		assert.Error(t, err)
	})
}

func TestDeriveRouteDeterministic(t *testing.T) {
	ids := []string{
		"Users::Index", "Users::Show", "Admin::Users::Create",
		"Projects::Users::Index",
	}

	derive := func() []Entry {
		var entries []Entry
		for _, id := range ids[:3] {
			e, err := DeriveRoute(id)
			require.NoError(t, err)
			entries = append(entries, e)
		}
		e, err := DeriveNestedRoute(ids[3])
		require.NoError(t, err)
		return append(entries, e)
	}

	first := derive()
	second := derive()

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Method, second[i].Method)
		assert.Equal(t, first[i].Pattern.Template(), second[i].Pattern.Template())
		assert.Equal(t, first[i].ActionID, second[i].ActionID)
	}
}

func TestParseVerb(t *testing.T) {
	t.Run("identity spelling", func(t *testing.T) {
		v, ok := ParseVerb("Show")
		require.True(t, ok)
		assert.Equal(t, VerbShow, v)
	})

	t.Run("manifest spelling", func(t *testing.T) {
		v, ok := ParseVerb("delete")
		require.True(t, ok)
		assert.Equal(t, VerbDelete, v)
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := ParseVerb("destroy")
		assert.False(t, ok)
	})
}

func TestToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Users", want: "users"},
		{in: "MyAdminSection", want: "my_admin_section"},
		{in: "BlogPosts", want: "blog_posts"},
		{in: "APIKeys", want: "api_keys"},
		{in: "V1", want: "v1"},
		{in: "already_snake", want: "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, toSnake(tt.in))
		})
	}
}

func TestSingular(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "projects", want: "project"},
		{in: "categories", want: "category"},
		{in: "boxes", want: "box"},
		{in: "branches", want: "branch"},
		{in: "dishes", want: "dish"},
		{in: "statuses", want: "status"},
		{in: "address", want: "address"},
		{in: "data", want: "data"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, singular(tt.in))
		})
	}
}
