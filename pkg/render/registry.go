package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownRenderer reports a lookup for a name nothing registered under.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry maps renderer names to implementations so the active output format
// can be selected by configuration. Registration happens during startup
// wiring, before any request handling, so access is not synchronized.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under its Name(). Duplicate names are an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for startup wiring
// where a duplicate name is a programming error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name. The error lists the
// registered names so a misconfigured selection is diagnosable from the log.
func (r *Registry) Get(name string) (Renderer, error) {
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %s)", ErrUnknownRenderer, name, strings.Join(r.Names(), ", "))
	}
	return renderer, nil
}

// Names returns the registered renderer names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
