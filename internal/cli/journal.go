package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

func newJournalCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "journal URL [URL...]",
		Short: "Run navigations against the SQLite session store and print its journal",
		Long: "Like go, but always uses the SQLite session store. After the navigations\n" +
			"the transition journal of the session is printed in settle order.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return sysError(err)
			}
			cfg.Memory = types.MemorySQLite
			return runNavigations(cmd, flags, cfg, args, func(s *session) error {
				return printJournal(cmd, flags, s)
			})
		},
	}
}

func printJournal(cmd *cobra.Command, flags *rootFlags, s *session) error {
	entries, err := s.backend.Journal(cmd.Context())
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	out := cmd.OutOrStdout()
	if !flags.jsonMode {
		fmt.Fprintf(out, "journal (%d transitions)\n", len(entries))
	}
	for _, e := range entries {
		if flags.jsonMode {
			if err := writeJSONLine(out, e); err != nil {
				return err
			}
			continue
		}
		from := string(e.Event.From)
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(out, "%3d %s %s %s\n", e.Seq, fit(from, stateColumn), fit(string(e.Event.To), stateColumn), e.Event.Href)
	}
	return nil
}
