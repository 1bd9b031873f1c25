package dispatch

import (
	"fmt"
	"net/http"
	"strings"
)

// Verb is the last segment of an action identity. Each verb maps to a
// fixed method and path shape, so applications get predictable URLs from
// action names alone.
type Verb int

const (
	VerbIndex Verb = iota
	VerbShow
	VerbNew
	VerbCreate
	VerbEdit
	VerbUpdate
	VerbDelete
)

// String returns the identity-segment spelling of the verb.
func (v Verb) String() string {
	switch v {
	case VerbIndex:
		return "Index"
	case VerbShow:
		return "Show"
	case VerbNew:
		return "New"
	case VerbCreate:
		return "Create"
	case VerbEdit:
		return "Edit"
	case VerbUpdate:
		return "Update"
	case VerbDelete:
		return "Delete"
	}
	return fmt.Sprintf("Verb(%d)", int(v))
}

// verbSpec is one row of the fixed derivation table. suffix is appended
// after the resource path segment.
type verbSpec struct {
	method string
	suffix string
}

// verbTable is the contract between action names and URLs. Applications
// rely on these being stable, so the table is bit-exact:
//
//	Index   GET     /resource
//	Show    GET     /resource/:id
//	New     GET     /resource/new
//	Create  POST    /resource
//	Edit    GET     /resource/:id/edit
//	Update  PUT     /resource/:id
//	Delete  DELETE  /resource/:id
var verbTable = map[Verb]verbSpec{
	VerbIndex:  {method: http.MethodGet, suffix: ""},
	VerbShow:   {method: http.MethodGet, suffix: "/:id"},
	VerbNew:    {method: http.MethodGet, suffix: "/new"},
	VerbCreate: {method: http.MethodPost, suffix: ""},
	VerbEdit:   {method: http.MethodGet, suffix: "/:id/edit"},
	VerbUpdate: {method: http.MethodPut, suffix: "/:id"},
	VerbDelete: {method: http.MethodDelete, suffix: "/:id"},
}

// ParseVerb parses an identity segment into a Verb. Both the identity
// spelling ("Show") and the lowercase manifest spelling ("show") are
// accepted.
func ParseVerb(s string) (Verb, bool) {
	switch strings.ToLower(s) {
	case "index":
		return VerbIndex, true
	case "show":
		return VerbShow, true
	case "new":
		return VerbNew, true
	case "create":
		return VerbCreate, true
	case "edit":
		return VerbEdit, true
	case "update":
		return VerbUpdate, true
	case "delete":
		return VerbDelete, true
	}
	return 0, false
}

// DeriveRoute derives a route entry from a plain action identity of the
// form "Namespace::...::Resource::Verb". The last segment is the verb,
// the second-to-last the resource, everything before is namespace.
// Namespace and resource segments are converted to snake_case path
// segments in order:
//
//	Users::Show             -> GET /users/:id
//	MyAdminSection::Users::Show -> GET /my_admin_section/users/:id
//
// Derivation is a pure function of the identity: identical inputs always
// produce identical entries.
func DeriveRoute(actionID string) (Entry, error) {
	segs, err := splitIdentity(actionID, 2)
	if err != nil {
		return Entry{}, err
	}

	verb, ok := ParseVerb(segs[len(segs)-1])
	if !ok {
		return Entry{}, fmt.Errorf("dispatch: unknown verb %q in action %q", segs[len(segs)-1], actionID)
	}

	resource := segs[len(segs)-2]
	namespace := segs[:len(segs)-2]

	spec := verbTable[verb]
	tpl := namespacePrefix(namespace) + "/" + toSnake(resource) + spec.suffix

	pattern, err := ParsePattern(tpl)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Method: spec.method, Pattern: pattern, ActionID: actionID}, nil
}

// DeriveNestedRoute derives a route entry for a resource nested one level
// under a parent. The identity reads "...::Parent::Resource::Verb": the
// last segment is the verb, the second-to-last the child resource, the
// third-to-last the parent resource, anything before is namespace. The
// parent contributes a "/parent/:parent_id" prefix, with the parameter
// name built from the singular form of the parent:
//
//	Projects::Users::Index -> GET /projects/:project_id/users
//
// Deeper nesting is not derivable; register such routes explicitly.
func DeriveNestedRoute(actionID string) (Entry, error) {
	segs, err := splitIdentity(actionID, 3)
	if err != nil {
		return Entry{}, err
	}

	verb, ok := ParseVerb(segs[len(segs)-1])
	if !ok {
		return Entry{}, fmt.Errorf("dispatch: unknown verb %q in action %q", segs[len(segs)-1], actionID)
	}

	resource := segs[len(segs)-2]
	parent := segs[len(segs)-3]
	namespace := segs[:len(segs)-3]

	parentSnake := toSnake(parent)
	spec := verbTable[verb]
	tpl := namespacePrefix(namespace) +
		"/" + parentSnake + "/:" + singular(parentSnake) + "_id" +
		"/" + toSnake(resource) + spec.suffix

	pattern, err := ParsePattern(tpl)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Method: spec.method, Pattern: pattern, ActionID: actionID}, nil
}

// splitIdentity splits an action id on "::" and validates segment count
// and non-emptiness.
func splitIdentity(actionID string, minSegments int) ([]string, error) {
	segs := strings.Split(actionID, "::")
	if len(segs) < minSegments {
		return nil, fmt.Errorf("dispatch: action %q needs at least %d identity segments", actionID, minSegments)
	}
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("dispatch: empty identity segment in action %q", actionID)
		}
	}
	return segs, nil
}

// namespacePrefix converts namespace segments to their path form.
func namespacePrefix(namespace []string) string {
	var sb strings.Builder
	for _, ns := range namespace {
		sb.WriteByte('/')
		sb.WriteString(toSnake(ns))
	}
	return sb.String()
}

// toSnake converts a PascalCase or camelCase identifier to its lowercase
// underscore-separated path form: MyAdminSection -> my_admin_section.
// Runs of capitals are kept together until the last one starts a new
// word: APIKeys -> api_keys.
func toSnake(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)

	runes := []rune(s)
	for i, r := range runes {
		if isUpper(r) {
			prevLower := i > 0 && !isUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !isUpper(runes[i+1]) && runes[i+1] != '_'
			if i > 0 && (prevLower || nextLower) && runes[i-1] != '_' {
				sb.WriteByte('_')
			}
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// singular reduces a plural snake_case resource name to the singular form
// used for the nested parent id parameter: projects -> project,
// categories -> category, boxes -> box. The rule is intentionally small;
// resources with irregular plurals should be registered explicitly.
func singular(s string) string {
	switch {
	case strings.HasSuffix(s, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "ses"), strings.HasSuffix(s, "xes"),
		strings.HasSuffix(s, "zes"), strings.HasSuffix(s, "ches"),
		strings.HasSuffix(s, "shes"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") && len(s) > 1:
		return s[:len(s)-1]
	}
	return s
}
