package cmd

import (
	"context"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/internal/serverconfig"

	"github.com/spf13/cobra"
)

func newAccessServiceCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "access-service",
		Aliases: []string{"access-services"},
		Short:   "Manage the access services of a server",
	}

	cmd.AddCommand(newAccessServiceConfigureCmd(opts))
	cmd.AddCommand(newServiceRemoveCmd(opts, "access service", serverconfig.OpRemoveAccessService,
		api.ServerConfigHandler.RemoveAccessService))
	cmd.AddCommand(&cobra.Command{
		Use:   "list <server>",
		Short: "List the access services of a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				svcs, err := s.handler.GetAccessServices(s.ctx, s.request(args[0]))
				if err != nil {
					return err
				}
				s.print(s.formatter.FormatAccessServices(svcs))
				return nil
			})
		},
	})
	cmd.AddCommand(newServerMutationCmd(opts, "clear", "Remove every access service",
		serverconfig.OpClearAccessServices, api.ServerConfigHandler.ClearAccessServices))

	return cmd
}

func newAccessServiceConfigureCmd(opts *globalOptions) *cobra.Command {
	var options []string

	cmd := &cobra.Command{
		Use:   "configure <server> <access-service>",
		Short: "Add or replace an access service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseKeyValues(options)
			if err != nil {
				return err
			}
			svc := document.AccessServiceConfig{AccessServiceName: args[1], AccessServiceOptions: parsed}
			return runMutation(cmd, opts, serverconfig.OpConfigureAccessService, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.ConfigureAccessService(ctx, req, svc)
				})
		},
	}

	cmd.Flags().StringArrayVar(&options, "option", nil, "Access service option as key=value (repeatable)")

	return cmd
}

func newViewServiceCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view-service",
		Aliases: []string{"view-services"},
		Short:   "Manage the view services of a server",
	}

	cmd.AddCommand(newViewServiceConfigureCmd(opts))
	cmd.AddCommand(newServiceRemoveCmd(opts, "view service", serverconfig.OpRemoveViewService,
		api.ServerConfigHandler.RemoveViewService))
	cmd.AddCommand(&cobra.Command{
		Use:   "list <server>",
		Short: "List the view services of a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				svcs, err := s.handler.GetViewServices(s.ctx, s.request(args[0]))
				if err != nil {
					return err
				}
				s.print(s.formatter.FormatViewServices(svcs))
				return nil
			})
		},
	})
	cmd.AddCommand(newServerMutationCmd(opts, "clear", "Remove every view service",
		serverconfig.OpClearViewServices, api.ServerConfigHandler.ClearViewServices))

	return cmd
}

func newViewServiceConfigureCmd(opts *globalOptions) *cobra.Command {
	var (
		svc     document.ViewServiceConfig
		options []string
	)

	cmd := &cobra.Command{
		Use:   "configure <server> <view-service>",
		Short: "Add or replace a view service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseKeyValues(options)
			if err != nil {
				return err
			}
			svc.ViewServiceName = args[1]
			svc.ViewServiceOptions = parsed
			return runMutation(cmd, opts, serverconfig.OpConfigureViewService, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return h.ConfigureViewService(ctx, req, svc)
				})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&svc.OMAGServerName, "omag-server", "", "OMAG server the view service calls")
	flags.StringVar(&svc.OMAGServerPlatformRootURL, "platform-url", "", "Root URL of that server's platform")
	flags.StringArrayVar(&options, "option", nil, "View service option as key=value (repeatable)")

	return cmd
}

// newServiceRemoveCmd builds "remove <server> <name>" for access and view services.
func newServiceRemoveCmd(opts *globalOptions, kind, operation string,
	fn func(api.ServerConfigHandler, context.Context, api.Request, string) (api.Outcome, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <server> <name>",
		Short: "Remove one " + kind,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, operation, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return fn(h, ctx, req, args[1])
				})
		},
	}
}
