// Package manifest loads a declarative YAML route manifest and registers
// its contents on a dispatch.Builder. A manifest carries explicit routes
// and convention resources side by side:
//
//	routes:
//	  - method: GET
//	    path: /healthz
//	    action: Health::Check
//
//	resources:
//	  - name: Users
//	    namespace: [Admin]
//	    verbs: [index, show, create]
//
//	nested:
//	  - parent: Projects
//	    name: Users
//	    verbs: [index, create]
//
// Resource entries expand into one action per verb: the Users resource
// above registers Admin::Users::Index, Admin::Users::Show and
// Admin::Users::Create through convention derivation, exactly as if the
// application had called Builder.Route for each. Handlers still attach in
// code via Builder.Action.
package manifest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/strada/dispatch"
)

// Document is a parsed route manifest.
type Document struct {
	Routes    []RouteDecl    `yaml:"routes"`
	Resources []ResourceDecl `yaml:"resources"`
	Nested    []NestedDecl   `yaml:"nested"`
}

// RouteDecl is an explicit route registration.
type RouteDecl struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
	Action string `yaml:"action"`
}

// ResourceDecl expands into convention-derived routes, one per verb.
type ResourceDecl struct {
	Name      string   `yaml:"name"`
	Namespace []string `yaml:"namespace"`
	Verbs     []string `yaml:"verbs"`
}

// NestedDecl expands into nested convention-derived routes, one per verb.
type NestedDecl struct {
	Parent    string   `yaml:"parent"`
	Name      string   `yaml:"name"`
	Namespace []string `yaml:"namespace"`
	Verbs     []string `yaml:"verbs"`
}

// Parse reads a manifest document. Unknown fields are rejected so typos
// in a manifest fail at load time instead of silently dropping routes.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Load reads a manifest document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// validate checks the document before any registration happens, so Apply
// either registers everything or nothing.
func (d *Document) validate() error {
	for i, r := range d.Routes {
		if r.Method == "" || r.Path == "" || r.Action == "" {
			return fmt.Errorf("manifest: route %d needs method, path and action", i)
		}
	}
	for _, res := range d.Resources {
		if res.Name == "" {
			return fmt.Errorf("manifest: resource needs a name")
		}
		if err := checkVerbs(res.Name, res.Verbs); err != nil {
			return err
		}
	}
	for _, n := range d.Nested {
		if n.Name == "" || n.Parent == "" {
			return fmt.Errorf("manifest: nested resource needs name and parent")
		}
		if err := checkVerbs(n.Name, n.Verbs); err != nil {
			return err
		}
	}
	return nil
}

func checkVerbs(resource string, verbs []string) error {
	if len(verbs) == 0 {
		return fmt.Errorf("manifest: resource %q declares no verbs", resource)
	}
	for _, v := range verbs {
		if _, ok := dispatch.ParseVerb(v); !ok {
			return fmt.Errorf("manifest: resource %q has unknown verb %q (valid: index, show, new, create, edit, update, delete)", resource, v)
		}
	}
	return nil
}

// Apply registers every declaration on the builder. Action ids for
// resources are built from namespace, name and verb, e.g. the Users
// resource with namespace [Admin] and verb index registers
// "Admin::Users::Index".
func (d *Document) Apply(b *dispatch.Builder) {
	for _, r := range d.Routes {
		b.Register(r.Method, r.Path, r.Action)
	}
	for _, res := range d.Resources {
		for _, verb := range res.Verbs {
			b.Route(actionID(res.Namespace, res.Name, verb))
		}
	}
	for _, n := range d.Nested {
		for _, verb := range n.Verbs {
			segs := make([]string, 0, len(n.Namespace)+1)
			segs = append(segs, n.Namespace...)
			segs = append(segs, n.Parent)
			b.NestedRoute(actionID(segs, n.Name, verb))
		}
	}
}

// ActionIDs returns every action id the document would register, in
// declaration order. Useful for asserting that each id has a handler
// attached before building the table.
func (d *Document) ActionIDs() []string {
	var ids []string
	for _, r := range d.Routes {
		ids = append(ids, r.Action)
	}
	for _, res := range d.Resources {
		for _, verb := range res.Verbs {
			ids = append(ids, actionID(res.Namespace, res.Name, verb))
		}
	}
	for _, n := range d.Nested {
		for _, verb := range n.Verbs {
			segs := make([]string, 0, len(n.Namespace)+1)
			segs = append(segs, n.Namespace...)
			segs = append(segs, n.Parent)
			ids = append(ids, actionID(segs, n.Name, verb))
		}
	}
	return ids
}

// actionID joins namespace, resource and verb into an identity string.
// Verbs in manifests are lowercase; identity segments capitalize them.
func actionID(namespace []string, resource, verb string) string {
	segs := make([]string, 0, len(namespace)+2)
	segs = append(segs, namespace...)
	segs = append(segs, resource, titleVerb(verb))
	return strings.Join(segs, "::")
}

func titleVerb(verb string) string {
	v, ok := dispatch.ParseVerb(verb)
	if !ok {
		return verb
	}
	return v.String()
}
