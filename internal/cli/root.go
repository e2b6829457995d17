package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fdindex",
		Short: "Build the index of an F-Droid application repository",
		Long: `fdindex scans a repository directory for Android packages, reads the
hand-written application metadata and generates index.xml describing every
application and its available versions.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Spew out even more information than normal, including raw aapt output")
	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json)")

	rootCmd.AddCommand(NewGenerateCmd())

	return rootCmd
}
