package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mdc/internal/config"
	"github.com/tartampluch/go-mdc/internal/server"
)

func (a *App) newServeCmd() *cobra.Command {
	var opts syncOptions
	var port string

	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			srv := server.NewFeedServer(port, a.Clock)

			// The feed refreshes in the background; the server answers
			// 503 until the first sync lands.
			go a.refreshLoop(ctx, srv, opts)

			a.println(a.tr.MsgData(config.TKeyServing, map[string]any{
				"Port": port,
			}))
			return srv.Start(ctx)
		},
	}

	addSyncFlags(cmd, &opts)
	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}

// refreshLoop performs the initial sync and then re-syncs on the feed's
// suggested refresh interval. Sync failures keep the previous feed.
func (a *App) refreshLoop(ctx context.Context, srv *server.FeedServer, opts syncOptions) {
	sync := func() {
		ics, _, _, err := a.runSync(ctx, opts)
		if err != nil {
			slog.Error(config.ErrVCardParse,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyError, err,
			)
			return
		}
		srv.Update(ics)
	}

	sync()

	ticker := time.NewTicker(config.DefaultICalRefresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sync()
		}
	}
}
