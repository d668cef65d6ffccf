package cmd

import (
	"context"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/serverconfig"

	"github.com/spf13/cobra"
)

func newServerCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "server",
		Aliases: []string{"servers"},
		Short:   "Inspect server configuration documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <server>",
		Short: "Show the whole configuration document of a server",
		Long: `Shows the configuration document of a server. A server that has never been
configured is shown as an empty document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				doc, err := s.handler.GetServerConfig(s.ctx, s.request(args[0]))
				if err != nil {
					return err
				}
				s.print(s.formatter.FormatServer(doc))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the servers with a stored configuration document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				names, err := s.handler.ListServers(s.ctx)
				if err != nil {
					return err
				}
				s.print(s.formatter.FormatServers(names))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-type <server> <type>",
		Short: "Set the server type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, serverconfig.OpSetServerType, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.SetServerType(ctx, req, args[1])
				})
		},
	})

	return cmd
}
