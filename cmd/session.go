package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/app"
	"github.com/giantswarm/serverconf/internal/formatting"
	"github.com/giantswarm/serverconf/internal/identity"

	"github.com/spf13/cobra"
)

// session is one bootstrapped application scoped to a single command run.
type session struct {
	ctx       context.Context
	app       *app.Application
	handler   api.ServerConfigHandler
	formatter formatting.Formatter
	opts      *globalOptions
	cmd       *cobra.Command
}

func openSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	format, err := formatting.ParseFormat(opts.output)
	if err != nil {
		return nil, err
	}

	cfg := app.NewConfig(opts.debug, opts.configPath)
	cfg.StoreBackend = opts.storeBackend
	cfg.Version = rootCmd.Version

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	application, err := app.NewApplication(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if opts.user != "" {
		ctx = identity.WithUser(ctx, opts.user)
	}

	return &session{
		ctx:       ctx,
		app:       application,
		handler:   application.Services().ServerConfig,
		formatter: formatting.New(formatting.Options{Format: format}),
		opts:      opts,
		cmd:       cmd,
	}, nil
}

func (s *session) close() error {
	return s.app.Close()
}

func (s *session) request(serverName string) api.Request {
	return api.Request{ServerName: serverName, DelegatingUserID: s.opts.delegatingUser}
}

func (s *session) print(text string) {
	fmt.Fprint(s.cmd.OutOrStdout(), text)
}

// withSession opens a session, runs fn and closes the session again.
func withSession(cmd *cobra.Command, opts *globalOptions, fn func(*session) error) (err error) {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// mutationFunc performs one mutating operation against the handler.
type mutationFunc func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error)

// runMutation runs fn for serverName and prints its outcome.
func runMutation(cmd *cobra.Command, opts *globalOptions, operation, serverName string, fn mutationFunc) error {
	return withSession(cmd, opts, func(s *session) error {
		outcome, err := fn(s.ctx, s.handler, s.request(serverName))
		if err != nil {
			return err
		}
		s.print(s.formatter.FormatOutcome(operation, serverName, outcome))
		return nil
	})
}

// parseKeyValues turns repeated key=value flags into a map. An empty input
// yields nil so that absent options stay absent in the stored document.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q: expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}

// handlerMethod is a mutating operation that takes nothing but the request,
// written as a method expression such as api.ServerConfigHandler.ClearViewServices.
type handlerMethod func(api.ServerConfigHandler, context.Context, api.Request) (api.Outcome, error)

// newServerMutationCmd builds a "<use> <server>" command for a handlerMethod.
func newServerMutationCmd(opts *globalOptions, use, short, operation string,
	fn handlerMethod) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <server>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, operation, args[0],
				func(ctx context.Context, h api.ServerConfigHandler, req api.Request) (api.Outcome, error) {
					return fn(h, ctx, req)
				})
		},
	}
}
