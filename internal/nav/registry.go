// Package nav implements the navigation engine: a registry of states, a
// Navigator that runs transitions one at a time, deep-state redirects backed
// by a RedirectMemory, and the guard that moves a navigation off an entry
// state that has nothing to redirect to.
package nav

import (
	"fmt"
	"net/url"
	"slices"
	"sync"

	"github.com/mesh-intelligence/searchnav/internal/params"
	"github.com/mesh-intelligence/searchnav/pkg/types"
)

type registered struct {
	state   types.State
	pattern pattern
}

// Registry holds the declared state graph.
type Registry struct {
	mu     sync.RWMutex
	states map[types.StateID]*registered
	order  []types.StateID
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{states: make(map[types.StateID]*registered)}
}

// Register declares a state. Its parent, if any, must already be registered.
// Every InURL parameter must be named by the URL pattern and every name in
// the pattern must be declared InURL; violations wrap ErrInvalidStateDecl.
func (r *Registry) Register(s types.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		return fmt.Errorf("%w: empty state id", types.ErrInvalidStateDecl)
	}
	if _, dup := r.states[s.ID]; dup {
		return fmt.Errorf("%w: state %s already registered", types.ErrInvalidStateDecl, s.ID)
	}

	var base pattern
	if parent := s.ID.Parent(); parent != "" {
		p, ok := r.states[parent]
		if !ok {
			return fmt.Errorf("%w: parent %s of %s is not registered", types.ErrInvalidStateDecl, parent, s.ID)
		}
		base = p.pattern
	}

	pat, err := parsePattern(base, s.URL)
	if err != nil {
		return fmt.Errorf("state %s: %w", s.ID, err)
	}
	if err := checkParams(s, pat); err != nil {
		return fmt.Errorf("state %s: %w", s.ID, err)
	}

	for _, other := range r.states {
		if other.pattern.String() == pat.String() {
			return fmt.Errorf("%w: %s has the same url as %s", types.ErrInvalidStateDecl, s.ID, other.state.ID)
		}
	}

	s.Views = slices.Clone(s.Views)
	r.states[s.ID] = &registered{state: s, pattern: pat}
	r.order = append(r.order, s.ID)
	return nil
}

func checkParams(s types.State, pat pattern) error {
	inURL := make(map[string]bool)
	seen := make(map[string]bool)
	for _, d := range s.Params {
		if d.Name == "" || seen[d.Name] {
			return fmt.Errorf("%w: empty or duplicate param %q", types.ErrInvalidStateDecl, d.Name)
		}
		seen[d.Name] = true
		switch d.Type {
		case types.ParamString, types.ParamBool:
		default:
			return fmt.Errorf("%w: param %q has unsupported type %q", types.ErrInvalidStateDecl, d.Name, d.Type)
		}
		if d.InURL {
			inURL[d.Name] = true
		}
	}

	named := make(map[string]bool)
	for _, name := range pat.names() {
		named[name] = true
		d, ok := s.Decl(name)
		if !ok {
			return fmt.Errorf("%w: url param %q is not declared", types.ErrInvalidStateDecl, name)
		}
		if !d.InURL {
			return fmt.Errorf("%w: non-url param %q appears in the url", types.ErrInvalidStateDecl, name)
		}
	}
	for name := range inURL {
		if !named[name] {
			return fmt.Errorf("%w: url param %q is missing from %q", types.ErrInvalidStateDecl, name, s.URL)
		}
	}
	return nil
}

// Get returns the state with the given ID.
func (r *Registry) Get(id types.StateID) (types.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.states[id]
	if !ok {
		return types.State{}, fmt.Errorf("%w: %s", types.ErrStateNotFound, id)
	}
	s := reg.state
	s.Views = slices.Clone(s.Views)
	return s, nil
}

// States returns all states in registration order.
func (r *Registry) States() []types.State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.State, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.states[id].state)
	}
	return out
}

// Pattern returns the full URL pattern of a state, parent path included.
func (r *Registry) Pattern(id types.StateID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.states[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", types.ErrStateNotFound, id)
	}
	return reg.pattern.String(), nil
}

// Children returns the registered descendants of parent.
func (r *Registry) Children(parent types.StateID) []types.StateID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.StateID
	for _, id := range r.order {
		if id.IsDescendantOf(parent) {
			out = append(out, id)
		}
	}
	return out
}

// Bind attaches a view to a region of a state. Views render in bind order;
// binding a region twice replaces the earlier view.
func (r *Registry) Bind(id types.StateID, region string, view types.View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.states[id]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrStateNotFound, id)
	}
	for i, b := range reg.state.Views {
		if b.Region == region {
			reg.state.Views[i].View = view
			return nil
		}
	}
	reg.state.Views = append(reg.state.Views, types.ViewBinding{Region: region, View: view})
	return nil
}

// Match resolves a URL (path and query) to a state and its coerced params.
// Query keys that do not name an InURL param are ignored.
func (r *Registry) Match(rawURL string) (types.State, types.Params, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return types.State{}, nil, fmt.Errorf("%w: %q: %v", types.ErrNoRoute, rawURL, err)
	}

	r.mu.RLock()
	var (
		match  *registered
		values url.Values
	)
	for _, id := range r.order {
		reg := r.states[id]
		if v, ok := reg.pattern.match(u.EscapedPath()); ok {
			match, values = reg, v
			break
		}
	}
	r.mu.RUnlock()

	if match == nil {
		return types.State{}, nil, fmt.Errorf("%w: %q", types.ErrNoRoute, rawURL)
	}

	query := u.Query()
	for k, v := range values {
		query[k] = v
	}
	p, err := params.Coerce(match.state.Params, query)
	if err != nil {
		return types.State{}, nil, fmt.Errorf("state %s: %w", match.state.ID, err)
	}

	s := match.state
	s.Views = slices.Clone(s.Views)
	return s, p, nil
}

// Href builds the browser URL of a state for the given params. Non-URL
// params never appear in the result.
func (r *Registry) Href(id types.StateID, p types.Params) (string, error) {
	r.mu.RLock()
	reg, ok := r.states[id]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", types.ErrStateNotFound, id)
	}

	return reg.pattern.build(params.Encode(reg.state.Params, p))
}

// redirectAncestor returns the nearest strict ancestor of id that declares
// a Redirect function.
func (r *Registry) redirectAncestor(id types.StateID) (types.StateID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for p := id.Parent(); p != ""; p = p.Parent() {
		if reg, ok := r.states[p]; ok && reg.state.Redirect != nil {
			return p, true
		}
	}
	return "", false
}
