package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/store"
	"github.com/giantswarm/serverconf/pkg/logging"

	"github.com/spf13/cobra"
)

func newAuditCmd(opts *globalOptions) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "audit <server>",
		Short: "Show the audit trail of a server",
		Long: `Shows the audit trail of a server, oldest entry first.

With --follow the command keeps running and prints every entry appended by
other serverconf processes until interrupted. Following requires the file
store backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverName := args[0]
			return withSession(cmd, opts, func(s *session) error {
				doc, err := s.handler.GetServerConfig(s.ctx, s.request(serverName))
				if err != nil {
					return err
				}
				s.print(s.formatter.FormatAuditTrail(doc.AuditTrail))
				if !follow {
					return nil
				}

				fs, ok := s.app.Services().Store.(*store.File)
				if !ok {
					return fmt.Errorf("--follow requires the %s store backend", store.BackendFile)
				}
				ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return followTrail(ctx, fs, s.handler, s.request(serverName), len(doc.AuditTrail), cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new audit entries")

	return cmd
}

// followTrail prints the entries appended to the trail of req.ServerName
// after the first seen entries until ctx is done.
func followTrail(ctx context.Context, fs *store.File, h api.ServerConfigHandler, req api.Request, seen int, out io.Writer) error {
	w, err := store.NewWatcher(fs, 0)
	if err != nil {
		return err
	}
	defer w.Stop()
	go w.Run(ctx)

	path := fs.PathFor(req.ServerName)
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes():
			if !ok {
				return nil
			}
			if change.Path != path || change.Op != store.ChangeWrite {
				continue
			}
			doc, err := h.GetServerConfig(ctx, req)
			if err != nil {
				logging.Warn("Audit", "Failed to reload %s: %v", req.ServerName, err)
				continue
			}
			if len(doc.AuditTrail) < seen {
				// The document was replaced; start over from its first entry.
				seen = 0
			}
			for _, entry := range doc.AuditTrail[seen:] {
				fmt.Fprintln(out, entry)
			}
			seen = len(doc.AuditTrail)
		}
	}
}
