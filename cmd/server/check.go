package main

import (
	"fmt"

	"msa-addon/internal/catalog"
	"msa-addon/internal/platform/config"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func runCheck(cmd *cobra.Command) error {
	root := config.MediaRoot()

	snap, err := catalog.LoadSnapshot(afero.NewOsFs(), root)
	if err != nil {
		return fmt.Errorf("catalog under %s is invalid: %w", root, err)
	}

	out := cmd.OutOrStdout()
	for _, t := range snap.Titles() {
		fmt.Fprintf(out, "%3d  %-6s  %-40s  %d episodes\n", t.ID, t.Kind, t.Name, t.EpisodeCount())
	}
	fmt.Fprintf(out, "catalog ok: %d titles, %d episodes\n", snap.Len(), snap.EpisodeCount())
	return nil
}
