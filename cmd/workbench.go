package cmd

import (
	"context"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/internal/serverconfig"

	"github.com/spf13/cobra"
)

func newWorkbenchCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workbench",
		Short: "Enable or disable conformance suite workbenches",
		Long: `Manage the conformance suite workbenches of a server.

Enabling the first repository or platform workbench turns the server into a
conformance suite server: its repository services are replaced with an
in-memory local repository and its server type is set. Disabling workbenches
never touches the audit trail of a server that has nothing to disable.`,
	}

	cmd.AddCommand(newEnableRepositoryWorkbenchCmd(opts))
	cmd.AddCommand(newEnablePlatformWorkbenchCmd(opts))
	cmd.AddCommand(newEnablePerformanceWorkbenchCmd(opts))
	cmd.AddCommand(newServerMutationCmd(opts, "disable-repository", "Disable the repository conformance workbench",
		serverconfig.OpDisableRepositoryConformanceWorkbench, api.ServerConfigHandler.DisableRepositoryConformanceWorkbench))
	cmd.AddCommand(newServerMutationCmd(opts, "disable-platform", "Disable the platform conformance workbench",
		serverconfig.OpDisablePlatformConformanceWorkbench, api.ServerConfigHandler.DisablePlatformConformanceWorkbench))
	cmd.AddCommand(newServerMutationCmd(opts, "disable-all", "Disable every workbench and the conformance suite",
		serverconfig.OpDisableAllConformanceWorkbenches, api.ServerConfigHandler.DisableAllConformanceWorkbenches))

	return cmd
}

func newEnableRepositoryWorkbenchCmd(opts *globalOptions) *cobra.Command {
	var workbench document.RepositoryConformanceWorkbenchConfig

	cmd := &cobra.Command{
		Use:   "enable-repository <server>",
		Short: "Enable the repository conformance workbench",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, serverconfig.OpEnableRepositoryConformanceWorkbench, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.EnableRepositoryConformanceWorkbench(ctx, req, workbench)
				})
		},
	}

	cmd.Flags().StringVar(&workbench.TutRepositoryServerName, "tut-server", "", "Name of the repository server under test")
	cmd.Flags().IntVar(&workbench.MaxSearchResults, "max-search-results", 0, "Maximum results per search request")

	return cmd
}

func newEnablePlatformWorkbenchCmd(opts *globalOptions) *cobra.Command {
	var rootURL string

	cmd := &cobra.Command{
		Use:   "enable-platform <server>",
		Short: "Enable the platform conformance workbench",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, serverconfig.OpEnablePlatformConformanceWorkbench, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.EnablePlatformConformanceWorkbench(ctx, req, rootURL)
				})
		},
	}

	cmd.Flags().StringVar(&rootURL, "tut-platform-url", "", "Root URL of the platform under test")

	return cmd
}

func newEnablePerformanceWorkbenchCmd(opts *globalOptions) *cobra.Command {
	var workbench document.RepositoryPerformanceWorkbenchConfig

	cmd := &cobra.Command{
		Use:   "enable-performance <server>",
		Short: "Enable the repository performance workbench",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, serverconfig.OpEnableRepositoryPerformanceWorkbench, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.EnableRepositoryPerformanceWorkbench(ctx, req, workbench)
				})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&workbench.TutRepositoryServerName, "tut-server", "", "Name of the repository server under test")
	flags.IntVar(&workbench.InstancesPerType, "instances-per-type", 0, "Instances created per type")
	flags.IntVar(&workbench.MaxSearchResults, "max-search-results", 0, "Maximum results per search request")
	flags.IntVar(&workbench.WaitBetweenScenarios, "wait-between-scenarios", 0, "Seconds to wait between scenarios")
	flags.StringSliceVar(&workbench.ProfilesToSkip, "skip-profile", nil, "Profile to skip (repeatable)")
	flags.StringSliceVar(&workbench.MethodsToSkip, "skip-method", nil, "Method to skip (repeatable)")

	return cmd
}
