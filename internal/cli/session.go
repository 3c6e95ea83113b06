package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/searchnav/internal/i18n"
	"github.com/mesh-intelligence/searchnav/internal/memory"
	"github.com/mesh-intelligence/searchnav/internal/nav"
	"github.com/mesh-intelligence/searchnav/internal/sqlite"
	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// session wires one navigation session: redirect memory, the search state
// graph, the navigator and the entry guard.
type session struct {
	cfg     types.Config
	log     *zap.Logger
	labels  *i18n.Labels
	backend *sqlite.Backend
	store   *memory.Store
	reg     *nav.Registry
	nav     *nav.Navigator
	guard   *nav.Guard
}

// openSession builds a session from cfg. With the sqlite memory the session
// database is recreated and also serves as the transition journal.
// Observers are subscribed ahead of the guard so they see the entry
// transition before its corrective follow-up.
func openSession(cfg types.Config, log *zap.Logger, observers ...nav.SettleFunc) (*session, error) {
	labels, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, log: log, labels: labels}

	var mem types.RedirectMemory
	switch cfg.Memory {
	case types.MemorySQLite:
		s.backend = sqlite.NewBackend()
		if err := s.backend.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach session store: %w", err)
		}
		mem = s.backend
	default:
		s.store = memory.New()
		mem = s.store
	}
	log.Debug("session opened",
		zap.String("memory", cfg.Memory),
		zap.String("locale", labels.Tag().String()),
		zap.String("entry_fallback", cfg.EntryFallback))

	opts := []nav.SearchOption{
		nav.WithFallbackTitle(labels.SearchTitle()),
		nav.WithViews(s.regionView(nav.RegionResults), s.regionView(nav.RegionPanel)),
	}
	if cfg.EntryFallback == types.FallbackEager {
		opts = append(opts, nav.WithEagerFallback())
	}
	s.reg, err = nav.NewSearchRegistry(mem, opts...)
	if err != nil {
		s.Close()
		return nil, err
	}

	navOpts := []nav.Option{nav.WithLogger(log)}
	if s.backend != nil {
		navOpts = append(navOpts, nav.WithJournal(s.backend))
	}
	s.nav = nav.NewNavigator(s.reg, mem, navOpts...)
	for _, fn := range observers {
		s.nav.OnSettle(fn)
	}

	if cfg.EntryFallback != types.FallbackEager {
		s.guard = nav.NewGuard(s.nav, types.StateSearch, types.StateSearchResults, log)
		s.nav.OnSettle(s.guard.OnSettle)
	}
	return s, nil
}

// regionView logs each render of a results state region.
func (s *session) regionView(region string) types.View {
	return types.ViewFunc(func(_ context.Context, scope types.Scope) error {
		s.log.Debug("render",
			zap.String("region", region),
			zap.String("state", string(scope.State)),
			zap.String("title", scope.Title),
			zap.Bool("replay", scope.Replay))
		return nil
	})
}

// Close releases the session store, if any.
func (s *session) Close() error {
	if s.store != nil {
		s.log.Debug("session closed", zap.Int("remembered", s.store.Len()))
	}
	if s.backend == nil {
		return nil
	}
	return s.backend.Detach()
}
