package cmd

import (
	"context"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/internal/serverconfig"

	"github.com/spf13/cobra"
)

func newSecurityCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security",
		Short: "Manage the server security connector",
	}

	cmd.AddCommand(newSecuritySetCmd(opts))
	cmd.AddCommand(newSecurityGetCmd(opts))
	cmd.AddCommand(newServerMutationCmd(opts, "clear", "Remove the server security connector",
		serverconfig.OpClearServerSecurityConnection, api.ServerConfigHandler.ClearServerSecurityConnection))

	return cmd
}

func newSecuritySetCmd(opts *globalOptions) *cobra.Command {
	var (
		qualifiedName string
		displayName   string
		provider      string
		endpoint      string
		properties    []string
	)

	cmd := &cobra.Command{
		Use:   "set <server>",
		Short: "Set the server security connector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := parseKeyValues(properties)
			if err != nil {
				return err
			}
			conn := document.Connection{
				QualifiedName:           qualifiedName,
				DisplayName:             displayName,
				ConfigurationProperties: props,
			}
			if provider != "" {
				conn.ConnectorType = &document.ConnectorType{ConnectorProviderClassName: provider}
			}
			if endpoint != "" {
				conn.Endpoint = &document.Endpoint{Address: endpoint}
			}

			return runMutation(cmd, opts, serverconfig.OpSetServerSecurityConnection, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.SetServerSecurityConnection(ctx, req, conn)
				})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&qualifiedName, "qualified-name", "", "Qualified name of the connection")
	flags.StringVar(&displayName, "display-name", "", "Display name of the connection")
	flags.StringVar(&provider, "provider", "", "Connector provider class name")
	flags.StringVar(&endpoint, "endpoint", "", "Endpoint address")
	flags.StringArrayVar(&properties, "property", nil, "Configuration property as key=value (repeatable)")

	return cmd
}

func newSecurityGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <server>",
		Short: "Show the server security connector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				conn, err := s.handler.GetServerSecurityConnection(s.ctx, s.request(args[0]))
				if err != nil {
					return err
				}
				s.print(s.formatter.FormatConnection(conn))
				return nil
			})
		},
	}
}
