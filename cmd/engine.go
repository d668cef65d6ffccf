package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/internal/serverconfig"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newEngineCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "engine",
		Aliases: []string{"engines"},
		Short:   "Manage the governance engines of a server",
	}

	cmd.AddCommand(newEngineAddCmd(opts))
	cmd.AddCommand(newEngineListCmd(opts))
	cmd.AddCommand(newEngineSetCmd(opts))
	cmd.AddCommand(newServerMutationCmd(opts, "clear", "Remove every governance engine",
		serverconfig.OpClearEngineConfiguration, api.ServerConfigHandler.ClearEngineConfiguration))

	return cmd
}

func newEngineAddCmd(opts *globalOptions) *cobra.Command {
	var engine document.EngineConfig

	cmd := &cobra.Command{
		Use:   "add <server>",
		Short: "Add or replace a governance engine",
		Long: `Adds a governance engine to the server. An engine with the same qualified
name is replaced in place; otherwise the engine is appended. A missing engine
ID is generated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, serverconfig.OpAddEngine, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.AddEngine(ctx, req, engine)
				})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&engine.EngineQualifiedName, "name", "", "Qualified name of the engine")
	flags.StringVar(&engine.EngineID, "id", "", "Engine ID (generated when empty)")
	flags.StringVar(&engine.EngineUserID, "engine-user", "", "User ID the engine runs as")
	flags.StringVar(&engine.OMAGServerName, "omag-server", "", "OMAG server hosting the engine")
	flags.StringVar(&engine.OMAGServerPlatformRootURL, "platform-url", "", "Root URL of the OMAG server platform")

	return cmd
}

func newEngineListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <server>",
		Short: "List the governance engines of a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				engines, err := s.handler.GetEngineConfiguration(s.ctx, s.request(args[0]))
				if err != nil {
					return err
				}
				s.print(s.formatter.FormatEngines(engines))
				return nil
			})
		},
	}
}

func newEngineSetCmd(opts *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set <server> --file engines.yaml",
		Short: "Replace every governance engine with the list in a file",
		Long: `Replaces the whole governance engine list of the server. The file holds a
YAML or JSON list of engines; '-' reads it from standard input:

  - engineQualifiedName: governance-engine-1
    engineUserId: engineuser
    omagServerName: engine-host
    omagServerPlatformRootURL: https://localhost:9443`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engines, err := readEngines(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return runMutation(cmd, opts, serverconfig.OpSetEngineConfiguration, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.SetEngineConfiguration(ctx, req, engines)
				})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File with the engine list ('-' for stdin)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readEngines decodes the engine list at path. Unknown fields are rejected so
// that a typo does not silently drop a setting.
func readEngines(stdin io.Reader, path string) ([]document.EngineConfig, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read engines from %s: %w", path, err)
	}

	var engines []document.EngineConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&engines); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse engines from %s: %w", path, err)
	}
	return engines, nil
}
