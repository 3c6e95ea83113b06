package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

func newGoCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "go URL [URL...]",
		Short: "Run navigations in order within one session",
		Long: "Navigate to each URL in order, printing every settled transition with its\n" +
			"state, title, replay flag and canonical href. Navigating to \"/\" replays the\n" +
			"last search of the session, or opens an empty search.",
		Example: "  searchnav go '/search?query=cats&nonFree=true' /",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return sysError(err)
			}
			return runNavigations(cmd, flags, cfg, args, nil)
		},
	}
}

// runNavigations opens a session for cfg, navigates to each URL in order and
// prints settled transitions. A navigation that settles nothing new prints
// the current transition marked unchanged. After the navigations, done (if non-nil) runs
// against the still-open session.
func runNavigations(cmd *cobra.Command, flags *rootFlags, cfg types.Config, urls []string, done func(*session) error) error {
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return userError(err)
	}
	defer log.Sync() //nolint:errcheck

	printer := eventPrinter{w: cmd.OutOrStdout(), jsonMode: flags.jsonMode}
	settled := 0
	s, err := openSession(cfg, log, func(_ context.Context, ev types.NavigationEvent) error {
		settled++
		return printer.print(ev)
	})
	if err != nil {
		return sysError(err)
	}
	defer s.Close()

	stderr := cmd.ErrOrStderr()
	var (
		mu       sync.Mutex
		failures int
	)
	s.nav.OnError(func(err error) {
		mu.Lock()
		failures++
		mu.Unlock()
		fmt.Fprintf(stderr, "error: %v\n", err)
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for _, u := range urls {
		before := settled
		ev, err := s.nav.Navigate(ctx, u)
		if err != nil {
			mu.Lock()
			failures++
			mu.Unlock()
			fmt.Fprintf(stderr, "navigate %s: %v\n", u, err)
			continue
		}
		if settled == before {
			if err := printer.unchanged(ev); err != nil {
				return sysError(err)
			}
		}
	}

	if done != nil {
		if err := done(s); err != nil {
			return sysError(err)
		}
	}
	if failures > 0 {
		return userError(fmt.Errorf("%d of %d navigations failed", failures, len(urls)))
	}
	return nil
}
