package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the Cobra command for displaying the application version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of serverconf",
		Long:  `All software has versions. This is serverconf's.`,
		Run: func(cmd *cobra.Command, args []string) {
			// rootCmd.Version is injected by main at build time.
			fmt.Fprintf(cmd.OutOrStdout(), "serverconf version %s\n", rootCmd.Version)
		},
	}
}
