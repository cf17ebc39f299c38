package render

import (
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

// Registry holds the form renderers available to the orchestrator. The first
// renderer registered is the default. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byKey map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Renderer)}
}

// Register adds renderer under its Name. Names are unique and the declared
// content type must be a valid media type.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}
	if _, _, err := mime.ParseMediaType(renderer.ContentType()); err != nil {
		return fmt.Errorf("render: renderer %q content type: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byKey[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name. The error lists what is registered.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.byKey[name]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("render: renderer %q not found (registered: %s)", name, r.describe())
}

// Default returns the first registered renderer.
func (r *Registry) Default() (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil, false
	}
	return r.byKey[r.order[0]], true
}

// ForContentType returns the first registered renderer producing mediaType.
// Parameters such as charset are ignored on both sides.
func (r *Registry) ForContentType(mediaType string) (Renderer, error) {
	want, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return nil, fmt.Errorf("render: content type %q: %w", mediaType, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		renderer := r.byKey[name]
		got, _, _ := mime.ParseMediaType(renderer.ContentType())
		if got == want {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("render: no renderer produces %q", want)
}

// List returns the registered names sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byKey[name]
	return ok
}

func (r *Registry) describe() string {
	if len(r.order) == 0 {
		return "none"
	}
	return strings.Join(r.order, ", ")
}
