package nav

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// Router is the part of Navigator the guard drives.
type Router interface {
	Go(ctx context.Context, id types.StateID, p types.Params, opts types.NavOptions) (types.NavigationEvent, error)
	Active(eventID string) bool
}

// Guard moves a navigation that settled on an entry state to a target state.
// It is meant for entry states that cannot be abstract because redirects
// need a concrete state to pass through.
//
// Subscribe it with Navigator.OnSettle(guard.OnSettle). The corrective
// navigation settles on the target, which does not trigger the guard again.
type Guard struct {
	router Router
	entry  types.StateID
	target types.StateID
	log    *zap.Logger
	fired  *atomic.Int64
}

// NewGuard returns a Guard that forces router from entry to target.
func NewGuard(router Router, entry, target types.StateID, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{
		router: router,
		entry:  entry,
		target: target,
		log:    log,
		fired:  atomic.NewInt64(0),
	}
}

// OnSettle is a SettleFunc. When ev settled on the entry state and is still
// the active transition, it navigates to the target with no params and a
// forced reload. A failure is returned wrapped in ErrForcedNavigation and is
// not retried; losing to a newer navigation is not a failure.
func (g *Guard) OnSettle(ctx context.Context, ev types.NavigationEvent) error {
	if ev.To != g.entry {
		return nil
	}
	// A newer navigation has settled or is under way; it decides where the
	// session lands.
	if !g.router.Active(ev.ID) {
		g.log.Debug("entry transition replaced, not forcing",
			zap.String("event", ev.ID))
		return nil
	}

	g.fired.Inc()
	g.log.Info("settled on entry state, forcing navigation",
		zap.String("entry", string(g.entry)),
		zap.String("target", string(g.target)))

	_, err := g.router.Go(ctx, g.target, nil, types.NavOptions{Reload: true})
	if errors.Is(err, types.ErrSuperseded) {
		g.log.Debug("forced navigation superseded", zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s -> %s: %w", types.ErrForcedNavigation, g.entry, g.target, err)
	}
	return nil
}

// Fired returns the number of corrective navigations issued.
func (g *Guard) Fired() int64 {
	return g.fired.Load()
}
