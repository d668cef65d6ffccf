package cmd

import (
	"os"

	"github.com/giantswarm/serverconf/internal/api"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
// They let scripts tell rejected input apart from refused callers and broken setups.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInvalidParameter indicates the request was rejected by validation.
	ExitCodeInvalidParameter = 2
	// ExitCodeNotAuthorized indicates the caller is not allowed to change server configuration.
	ExitCodeNotAuthorized = 3
	// ExitCodeConfigurationError indicates the configuration store could not be read or written.
	ExitCodeConfigurationError = 4
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath     string
	debug          bool
	output         string
	storeBackend   string
	user           string
	delegatingUser string
}

// rootCmd represents the base command for the serverconf application.
// It is the entry point when the application is called without any subcommands.
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// newRootCmd builds the command tree. Tests build a fresh tree per run so
// flag values never leak between executions.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "serverconf",
		Short: "Manage OMAG server configuration documents",
		Long: `serverconf maintains the configuration documents of OMAG servers.

Every change is validated, merged into the stored document, recorded in the
document's audit trail and persisted. Operations that leave a document
unchanged are reported as "no change" and write nothing.

The same operations are available to AI assistants through 'serverconf serve',
which exposes them as MCP tools over stdio.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config-path", "", "Configuration directory (default is $HOME/.config/serverconf)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, yaml)")
	flags.StringVar(&opts.storeBackend, "store-backend", "", "Override store.backend (memory, file, sqlite, kubernetes, nats)")
	flags.StringVar(&opts.user, "user", "", "User recorded in the audit trail (default is identity.localUserId)")
	flags.StringVar(&opts.delegatingUser, "delegating-user", "", "User on whose behalf the change is made")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newWorkbenchCmd(opts))
	root.AddCommand(newEngineCmd(opts))
	root.AddCommand(newSecurityCmd(opts))
	root.AddCommand(newAccessServiceCmd(opts))
	root.AddCommand(newViewServiceCmd(opts))
	root.AddCommand(newServerCmd(opts))
	root.AddCommand(newAuditCmd(opts))

	return root
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "serverconf version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error kind.
func getExitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case api.IsInvalidParameter(err):
		return ExitCodeInvalidParameter
	case api.IsNotAuthorized(err):
		return ExitCodeNotAuthorized
	case api.IsConfigurationError(err):
		return ExitCodeConfigurationError
	default:
		return ExitCodeError
	}
}
