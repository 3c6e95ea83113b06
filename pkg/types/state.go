package types

import (
	"context"
	"strings"
)

// StateID names a navigation state. Hierarchy is encoded with dots: the
// parent of "search.results" is "search".
type StateID string

// Identifiers of the search state graph.
const (
	StateSearch        StateID = "search"
	StateSearchResults StateID = "search.results"
)

// Parent returns the parent state ID, or "" for a root state.
func (id StateID) Parent() StateID {
	i := strings.LastIndexByte(string(id), '.')
	if i < 0 {
		return ""
	}
	return id[:i]
}

// IsDescendantOf reports whether id is a strict descendant of ancestor.
func (id StateID) IsDescendantOf(ancestor StateID) bool {
	if ancestor == "" || id == ancestor {
		return false
	}
	return strings.HasPrefix(string(id), string(ancestor)+".")
}

// ParamType is the declared type of a state parameter.
type ParamType string

// Supported parameter types.
const (
	ParamString ParamType = "string"
	ParamBool   ParamType = "bool"
)

// ParamDecl declares one parameter of a state. InURL parameters are read
// from and written to the query string; the rest are engine-internal flags.
type ParamDecl struct {
	Name    string
	Type    ParamType
	Default any
	InURL   bool
}

// Redirect is the target produced by a state's RedirectFunc.
type Redirect struct {
	State  StateID
	Params Params
}

// RedirectFunc runs when its state is entered. Returning ok=false lets the
// state itself settle.
type RedirectFunc func(ctx context.Context) (target Redirect, ok bool, err error)

// ResolveFunc runs once per activation of a state. It returns the params
// visible to views and whether the activation replays a remembered
// navigation. It must not mutate its input.
type ResolveFunc func(params Params) (resolved Params, replay bool, err error)

// TitleFunc derives the human-readable title of an activation.
type TitleFunc func(params Params) string

// View consumes a resolved activation. Views are opaque to the engine.
type View interface {
	Render(ctx context.Context, scope Scope) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context, scope Scope) error

// Render calls f(ctx, scope).
func (f ViewFunc) Render(ctx context.Context, scope Scope) error {
	return f(ctx, scope)
}

// ViewBinding binds a View to a named region of a state.
type ViewBinding struct {
	Region string
	View   View
}

// State is one node of the navigation graph.
type State struct {
	ID       StateID
	URL      string
	Params   []ParamDecl
	Title    TitleFunc
	Redirect RedirectFunc
	Resolve  ResolveFunc
	Views    []ViewBinding

	// Abstract states can be entered only on the way to a descendant. A
	// navigation that would settle on one is rejected.
	Abstract bool
}

// Decl returns the declaration of the named parameter.
func (s State) Decl(name string) (ParamDecl, bool) {
	for _, d := range s.Params {
		if d.Name == name {
			return d, true
		}
	}
	return ParamDecl{}, false
}

// Scope is what every view bound to a settled state receives.
type Scope struct {
	State  StateID
	Title  string
	Params Params
	Replay bool
}

// NavOptions tunes a single navigation request.
type NavOptions struct {
	// Reload re-runs resolve and views even when the target equals the
	// current state with equal params.
	Reload bool
}
