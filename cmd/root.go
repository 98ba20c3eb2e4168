package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	syncOpts := &syncOptions{}

	rootCmd := &cobra.Command{
		Use:   "wsync",
		Short: "Workshop sync (wsync): download and place Steam Workshop mods",
		Long: "wsync reads mods.txt from the mods directory, downloads every listed Workshop item " +
			"with steamcmd and copies it into the mods directory. Items already present are skipped " +
			"and leftovers in the Steam download directory are reused unless --clean is given.",
		Example:       "  wsync -m ~/games/RimWorld/Mods -s ~/.local/share/Steam/steamapps/workshop/content/294100",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, opts, syncOpts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/wsync/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output, including every steamcmd line")

	syncOpts.roots.bind(rootCmd)
	rootCmd.Flags().BoolVar(&syncOpts.progress, "progress", false, "Show a progress bar on stderr")
	rootCmd.Flags().BoolVar(&syncOpts.asJSON, "json", false, "Print the run report as JSON")

	rootCmd.AddCommand(
		newPlanCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}
