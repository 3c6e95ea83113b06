package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/searchnav/internal/i18n"
	"github.com/mesh-intelligence/searchnav/internal/memory"
	"github.com/mesh-intelligence/searchnav/internal/nav"
)

// stateRow is the JSON shape of one registered state.
type stateRow struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Pattern  string   `json:"pattern"`
	Params   []string `json:"params"`
	Children []string `json:"children,omitempty"`
}

func newStatesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List the registered navigation states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStates(cmd, flags)
		},
	}
}

func runStates(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return sysError(err)
	}
	labels, err := i18n.New(cfg.Locale)
	if err != nil {
		return userError(err)
	}

	// Listing never navigates, so an in-process memory is enough.
	reg, err := nav.NewSearchRegistry(memory.New(), nav.WithFallbackTitle(labels.SearchTitle()))
	if err != nil {
		return sysError(err)
	}

	out := cmd.OutOrStdout()
	for _, st := range reg.States() {
		pat, err := reg.Pattern(st.ID)
		if err != nil {
			return sysError(err)
		}
		row := stateRow{ID: string(st.ID), Name: labels.StateName(st.ID), Pattern: pat}
		for _, d := range st.Params {
			row.Params = append(row.Params, d.Name)
		}
		for _, child := range reg.Children(st.ID) {
			row.Children = append(row.Children, string(child))
		}

		if flags.jsonMode {
			if err := writeJSONLine(out, row); err != nil {
				return sysError(err)
			}
			continue
		}
		fmt.Fprintf(out, "%s %s %s %s\n",
			fit(row.ID, stateColumn), fit(row.Name, titleColumn), pat, formatDecls(st.Params))
	}
	return nil
}
