package cmd

import (
	"encoding/json"
	"fmt"

	summaryadapter "github.com/bnema/workshop-sync/internal/adapters/render/summary"
	"github.com/bnema/workshop-sync/internal/application"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/spf13/cobra"
)

func newPlanCmd(opts *globalOptions) *cobra.Command {
	var (
		roots     rootsFlags
		showPaths bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a sync would do without starting steamcmd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			resolved, err := app.resolveRoots(cmd.Context(), roots)
			if err != nil {
				return err
			}
			items, err := app.loadManifest(cmd.Context(), resolved)
			if err != nil {
				return err
			}

			svc := application.NewSyncService(nil, app.dirs, nil, ports.SystemClock{}, app.syncSettings(resolved, nil))
			planned, err := svc.Plan(cmd.Context(), items, application.RunOptions{Clean: roots.clean})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(planned)
			}

			rendered, err := summaryadapter.RenderPlan(planned, summaryadapter.RenderOptions{ShowPaths: showPaths})
			if err != nil {
				return fmt.Errorf("render plan: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	roots.bind(cmd)
	cmd.Flags().BoolVar(&showPaths, "paths", false, "Show destination and staging paths for each mod")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")

	return cmd
}
