package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "toodledo",
		Short:         "Manage Toodledo tasks, folders, contexts and goals from the terminal",
		Long:          "toodledo talks to the Toodledo task service: add and edit tasks with inline *folder, @context, $goal and !priority tokens, browse the hotlist, and manage folders, contexts and goals.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			built, err := newApp(configPath, verbose)
			if err != nil {
				return err
			}
			*a = *built
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: $TOODLEDO_HOME or ~/.toodledo/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSetupCmd(a),
		newAddCmd(a),
		newTasksCmd(a),
		newHotlistCmd(a),
		newEditCmd(a),
		newCompleteCmd(a),
		newDeleteCmd(a),
		newFoldersCmd(a),
		newContextsCmd(a),
		newGoalsCmd(a),
	)

	return rootCmd
}
