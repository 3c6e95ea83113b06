package nav

import (
	"fmt"

	"github.com/mesh-intelligence/searchnav/internal/params"
	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// View regions of the results state.
const (
	RegionResults = "results"
	RegionPanel   = "panel"
)

// DefaultSearchTitle is the title of a results activation without a query.
const DefaultSearchTitle = "search"

// Results state parameter names.
const (
	ParamQuery      = "query"
	ParamIDs        = "ids"
	ParamSince      = "since"
	ParamUntil      = "until"
	ParamNonFree    = "nonFree"
	ParamUploadedBy = "uploadedBy"
	ParamOrderBy    = "orderBy"
)

type searchConfig struct {
	eager         bool
	fallbackTitle string
	resultsView   types.View
	panelView     types.View
}

// SearchOption configures NewSearchRegistry.
type SearchOption func(*searchConfig)

// WithEagerFallback makes the entry state redirect straight to the results
// state with default params when nothing is remembered, instead of settling
// and relying on a Guard.
func WithEagerFallback() SearchOption {
	return func(c *searchConfig) { c.eager = true }
}

// WithFallbackTitle sets the title used when there is no query.
func WithFallbackTitle(title string) SearchOption {
	return func(c *searchConfig) {
		if title != "" {
			c.fallbackTitle = title
		}
	}
}

// WithViews binds the results and panel regions of the results state.
func WithViews(results, panel types.View) SearchOption {
	return func(c *searchConfig) {
		c.resultsView = results
		c.panelView = panel
	}
}

// NewSearchRegistry declares the search state graph:
//
//	search          /        entry state, deep-state redirects to its last child
//	search.results  /search  query, ids, since, nonFree, uploadedBy, until, orderBy
func NewSearchRegistry(mem types.RedirectMemory, opts ...SearchOption) (*Registry, error) {
	cfg := searchConfig{fallbackTitle: DefaultSearchTitle}
	for _, opt := range opts {
		opt(&cfg)
	}

	var fallback *types.Redirect
	if cfg.eager {
		fallback = &types.Redirect{State: types.StateSearchResults, Params: types.Params{}}
	}

	reg := NewRegistry()

	// Not abstract: the redirect needs a concrete state to pass through.
	err := reg.Register(types.State{
		ID:       types.StateSearch,
		URL:      "/",
		Redirect: DeepStateRedirect(mem, types.StateSearch, fallback),
	})
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", types.StateSearch, err)
	}

	fallbackTitle := cfg.fallbackTitle
	err = reg.Register(types.State{
		ID:  types.StateSearchResults,
		URL: "search?query&ids&since&nonFree&uploadedBy&until&orderBy",
		Params: []types.ParamDecl{
			{Name: ParamQuery, Type: types.ParamString, Default: "", InURL: true},
			{Name: ParamIDs, Type: types.ParamString, Default: "", InURL: true},
			{Name: ParamSince, Type: types.ParamString, Default: "", InURL: true},
			{Name: ParamNonFree, Type: types.ParamBool, Default: false, InURL: true},
			{Name: ParamUploadedBy, Type: types.ParamString, Default: "", InURL: true},
			{Name: ParamUntil, Type: types.ParamString, Default: "", InURL: true},
			{Name: ParamOrderBy, Type: types.ParamString, Default: "", InURL: true},
			{Name: types.ParamIsDeepStateRedirect, Type: types.ParamBool, Default: false},
		},
		Title: func(p types.Params) string {
			if q := p.String(ParamQuery); q != "" {
				return q
			}
			return fallbackTitle
		},
		Resolve: IsReloadingPreviousSearch,
	})
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", types.StateSearchResults, err)
	}

	if cfg.resultsView != nil {
		if err := reg.Bind(types.StateSearchResults, RegionResults, cfg.resultsView); err != nil {
			return nil, err
		}
	}
	if cfg.panelView != nil {
		if err := reg.Bind(types.StateSearchResults, RegionPanel, cfg.panelView); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// IsReloadingPreviousSearch is the resolve step of the results state. It
// returns p without the deep-state-redirect flag and the flag's value, which
// views receive as "this activation replays a remembered search".
func IsReloadingPreviousSearch(p types.Params) (types.Params, bool, error) {
	clean, replay := params.Sanitize(p)
	return clean, replay, nil
}
