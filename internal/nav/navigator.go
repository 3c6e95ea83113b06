package nav

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/searchnav/internal/params"
	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// DefaultMaxRedirects bounds the redirect hops a single navigation may take.
const DefaultMaxRedirects = 8

// SettleFunc observes settled transitions. It runs after the transition lock
// is released, so it may start navigations of its own.
type SettleFunc func(ctx context.Context, ev types.NavigationEvent) error

// ErrorFunc receives failures that have no caller to return to, such as a
// settle listener failing.
type ErrorFunc func(err error)

// Journal receives every settled transition.
type Journal interface {
	Append(ctx context.Context, ev types.NavigationEvent) error
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// WithJournal records every settled transition in j.
func WithJournal(j Journal) Option {
	return func(n *Navigator) { n.journal = j }
}

// WithMaxRedirects overrides DefaultMaxRedirects.
func WithMaxRedirects(max int) Option {
	return func(n *Navigator) {
		if max > 0 {
			n.maxRedirects = max
		}
	}
}

// Navigator runs transitions between registered states one at a time.
//
// Every request takes a generation number before it waits for the
// transition lock. A transition that is no longer the newest request when it
// is about to render or commit, or whose context is done, is discarded with
// ErrSuperseded and leaves redirect memory untouched.
type Navigator struct {
	reg          *Registry
	mem          types.RedirectMemory
	journal      Journal
	log          *zap.Logger
	maxRedirects int

	gen      *atomic.Uint64
	pending  *atomic.Int64
	activeID *atomic.String

	mu         sync.Mutex
	current    types.NavigationEvent
	hasCurrent bool

	lmu     sync.RWMutex
	settles []SettleFunc
	errs    []ErrorFunc
}

// NewNavigator creates a Navigator over reg that records deep-state
// redirects in mem.
func NewNavigator(reg *Registry, mem types.RedirectMemory, opts ...Option) *Navigator {
	n := &Navigator{
		reg:          reg,
		mem:          mem,
		log:          zap.NewNop(),
		maxRedirects: DefaultMaxRedirects,
		pending:      atomic.NewInt64(0),
		activeID:     atomic.NewString(""),
		gen:          atomic.NewUint64(0),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// OnSettle subscribes fn to settled transitions.
func (n *Navigator) OnSettle(fn SettleFunc) {
	n.lmu.Lock()
	n.settles = append(n.settles, fn)
	n.lmu.Unlock()
}

// OnError subscribes fn to listener failures.
func (n *Navigator) OnError(fn ErrorFunc) {
	n.lmu.Lock()
	n.errs = append(n.errs, fn)
	n.lmu.Unlock()
}

// Active reports whether the transition with the given event ID is still
// the settled one and no other navigation is in flight. Settle listeners run
// after the transition lock is released, so a listener that acts on the
// navigator uses Active to skip events that a newer navigation replaced.
func (n *Navigator) Active(eventID string) bool {
	return eventID != "" && n.pending.Load() == 0 && n.activeID.Load() == eventID
}

// Current returns the last settled transition.
func (n *Navigator) Current() (types.NavigationEvent, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.hasCurrent
}

// Navigate matches rawURL against the registry and navigates to the result.
func (n *Navigator) Navigate(ctx context.Context, rawURL string) (types.NavigationEvent, error) {
	st, p, err := n.reg.Match(rawURL)
	if err != nil {
		n.log.Warn("navigation rejected", zap.String("url", rawURL), zap.Error(err))
		return types.NavigationEvent{}, err
	}
	return n.Go(ctx, st.ID, p, types.NavOptions{})
}

// Go navigates to the state id with params p. It returns the settled
// transition; settle listeners have run by the time Go returns.
//
// Without opts.Reload, navigating to the current state with equal params and
// the same replay flag is a no-op that returns the current transition
// without notifying listeners.
func (n *Navigator) Go(ctx context.Context, id types.StateID, p types.Params, opts types.NavOptions) (types.NavigationEvent, error) {
	n.pending.Inc()
	gen := n.gen.Inc()

	n.mu.Lock()
	ev, changed, err := n.transition(ctx, gen, id, p, opts)
	n.mu.Unlock()
	n.pending.Dec()

	if err != nil {
		if errors.Is(err, types.ErrSuperseded) {
			n.log.Debug("navigation superseded", zap.String("to", string(id)), zap.Uint64("gen", gen))
		} else {
			n.log.Warn("navigation rejected", zap.String("to", string(id)), zap.Error(err))
		}
		return types.NavigationEvent{}, err
	}
	if changed {
		n.emit(ctx, ev)
	}
	return ev, nil
}

// transition runs with n.mu held.
func (n *Navigator) transition(ctx context.Context, gen uint64, id types.StateID, p types.Params, opts types.NavOptions) (types.NavigationEvent, bool, error) {
	if err := n.checkCurrent(ctx, gen); err != nil {
		return types.NavigationEvent{}, false, err
	}

	st, p, err := n.followRedirects(ctx, id, p)
	if err != nil {
		return types.NavigationEvent{}, false, err
	}

	if st.Abstract {
		return types.NavigationEvent{}, false, fmt.Errorf("%w: %s", types.ErrAbstractState, st.ID)
	}

	norm, err := params.Normalize(st.Params, p)
	if err != nil {
		return types.NavigationEvent{}, false, fmt.Errorf("state %s: %w", st.ID, err)
	}

	resolved, replay, err := n.resolve(st, norm)
	if err != nil {
		return types.NavigationEvent{}, false, err
	}

	// A replay differs from a plain activation even with equal params.
	if !opts.Reload && n.hasCurrent && n.current.To == st.ID && n.current.Replay == replay && n.current.Params.Equal(resolved) {
		return n.current, false, nil
	}

	title := string(st.ID)
	if st.Title != nil {
		title = st.Title(resolved)
	}
	href, err := n.reg.Href(st.ID, resolved)
	if err != nil {
		return types.NavigationEvent{}, false, fmt.Errorf("state %s: %w", st.ID, err)
	}

	scope := types.Scope{State: st.ID, Title: title, Params: resolved, Replay: replay}
	for _, b := range st.Views {
		if err := n.checkCurrent(ctx, gen); err != nil {
			return types.NavigationEvent{}, false, err
		}
		if b.View == nil {
			continue
		}
		// Each view gets its own copy so one consumer cannot alter another's scope.
		vs := scope
		vs.Params = resolved.Clone()
		if err := b.View.Render(ctx, vs); err != nil {
			return types.NavigationEvent{}, false, fmt.Errorf("state %s: render %s: %w", st.ID, b.Region, err)
		}
	}

	if err := n.checkCurrent(ctx, gen); err != nil {
		return types.NavigationEvent{}, false, err
	}

	if parent, ok := n.reg.redirectAncestor(st.ID); ok {
		if err := n.mem.Record(ctx, parent, st.ID, resolved); err != nil {
			return types.NavigationEvent{}, false, fmt.Errorf("record redirect: %w", err)
		}
	}

	ev := types.NavigationEvent{
		ID:     newEventID(),
		To:     st.ID,
		Title:  title,
		Params: resolved,
		Replay: replay,
		Href:   href,
	}
	if n.hasCurrent {
		ev.From = n.current.To
	}
	n.current, n.hasCurrent = ev, true
	n.activeID.Store(ev.ID)

	if n.journal != nil {
		if err := n.journal.Append(ctx, ev); err != nil {
			n.log.Warn("journal append failed", zap.String("id", ev.ID), zap.Error(err))
		}
	}

	n.log.Info("navigation settled",
		zap.String("from", string(ev.From)),
		zap.String("to", string(ev.To)),
		zap.String("href", ev.Href),
		zap.Bool("replay", ev.Replay))
	return ev, true, nil
}

// followRedirects enters id and follows redirect functions until a state
// declines to redirect.
func (n *Navigator) followRedirects(ctx context.Context, id types.StateID, p types.Params) (types.State, types.Params, error) {
	for hops := 0; ; hops++ {
		st, err := n.reg.Get(id)
		if err != nil {
			return types.State{}, nil, err
		}
		if st.Redirect == nil {
			return st, p, nil
		}
		if hops >= n.maxRedirects {
			return types.State{}, nil, fmt.Errorf("%w: gave up at %s after %d hops", types.ErrRedirectLoop, id, hops)
		}

		target, ok, err := st.Redirect(ctx)
		if err != nil {
			return types.State{}, nil, fmt.Errorf("state %s: redirect: %w", st.ID, err)
		}
		if !ok {
			return st, p, nil
		}
		n.log.Debug("deep state redirect",
			zap.String("from", string(st.ID)),
			zap.String("to", string(target.State)))
		id, p = target.State, target.Params
	}
}

// resolve runs the state's resolve step and guarantees that no transient
// key survives it.
func (n *Navigator) resolve(st types.State, p types.Params) (types.Params, bool, error) {
	if st.Resolve == nil {
		clean, _, _ := params.Strip(p, params.Transient...)
		return clean, false, nil
	}
	resolved, replay, err := st.Resolve(p.Clone())
	if err != nil {
		return nil, false, fmt.Errorf("state %s: resolve: %w", st.ID, err)
	}
	clean, _, _ := params.Strip(resolved, params.Transient...)
	return clean, replay, nil
}

func (n *Navigator) checkCurrent(ctx context.Context, gen uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrSuperseded, err)
	}
	if latest := n.gen.Load(); latest != gen {
		return fmt.Errorf("%w: generation %d replaced by %d", types.ErrSuperseded, gen, latest)
	}
	return nil
}

func (n *Navigator) emit(ctx context.Context, ev types.NavigationEvent) {
	n.lmu.RLock()
	settles := append([]SettleFunc(nil), n.settles...)
	n.lmu.RUnlock()

	for _, fn := range settles {
		if err := fn(ctx, ev); err != nil {
			n.report(err)
		}
	}
}

func (n *Navigator) report(err error) {
	n.log.Error("settle listener failed", zap.Error(err))

	n.lmu.RLock()
	errs := append([]ErrorFunc(nil), n.errs...)
	n.lmu.RUnlock()

	for _, fn := range errs {
		fn(err)
	}
}

// newEventID generates a UUID v7 for a navigation event.
func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
