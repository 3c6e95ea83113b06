package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/searchnav/internal/sqlite"
	"github.com/mesh-intelligence/searchnav/pkg/types"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the searchnav config and data directories",
		Long: "Create config.yaml with default values if it is missing, create the data\n" +
			"directory, and check that the SQLite session store can be opened.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return sysError(err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create data directory: %w", err))
	}

	probe := cfg
	probe.Memory = types.MemorySQLite
	backend := sqlite.NewBackend()
	if err := backend.Attach(probe); err != nil {
		return sysError(fmt.Errorf("initialize session store: %w", err))
	}
	dbPath := backend.Path()
	if err := backend.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize session store: %w", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "searchnav initialized")
	fmt.Fprintf(cmd.OutOrStdout(), "data dir: %s\n", cfg.DataDir)
	fmt.Fprintf(cmd.OutOrStdout(), "session db: %s\n", dbPath)
	return nil
}
