package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mdc/internal/config"
	"github.com/tartampluch/go-mdc/internal/engine"
)

// syncOptions groups the flags shared by sync and serve.
type syncOptions struct {
	source   string
	path     string
	url      string
	user     string
	pass     string
	reminder string
}

func addSyncFlags(cmd *cobra.Command, o *syncOptions) {
	cmd.Flags().StringVar(&o.source, config.FlagSource, config.SourceModeLocal, config.FlagDescSource)
	cmd.Flags().StringVar(&o.path, config.FlagPath, "", config.FlagDescPath)
	cmd.Flags().StringVar(&o.url, config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().StringVar(&o.user, config.FlagUser, "", config.FlagDescUser)
	cmd.Flags().StringVar(&o.pass, config.FlagPass, "", config.FlagDescPass)
	cmd.Flags().StringVar(&o.reminder, config.FlagReminder, "", config.FlagDescRem)
}

func (o syncOptions) config() engine.SyncConfig {
	return engine.SyncConfig{
		Mode:            o.source,
		LocalPath:       o.path,
		WebURL:          o.url,
		WebUser:         o.user,
		WebPass:         o.pass,
		ReminderTrigger: o.reminder,
	}
}

// newGenerator wires the sync engine with localized event summaries.
func (a *App) newGenerator() *engine.Generator {
	return &engine.Generator{
		Clock:         a.Clock,
		Fetcher:       engine.NewHTTPFetcher(),
		FormatSummary: a.formatSummary,
	}
}

// formatSummary renders a localized event title, falling back to the
// fixed English templates when the locale bundle has no entry.
func (a *App) formatSummary(name string, age int, yearKnown bool) string {
	data := map[string]any{"Name": name, "Age": age}
	switch {
	case !yearKnown:
		if msg := a.tr.MsgData(config.TKeyEvtSummary, data); msg != config.TKeyEvtSummary {
			return msg
		}
		return fmt.Sprintf(config.FallbackSummary, name)
	case age == 0:
		if msg := a.tr.MsgData(config.TKeyEvtSummaryBirth, data); msg != config.TKeyEvtSummaryBirth {
			return msg
		}
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	default:
		if msg := a.tr.MsgData(config.TKeyEvtSummaryAge, data); msg != config.TKeyEvtSummaryAge {
			return msg
		}
		return fmt.Sprintf(config.FallbackSummaryAge, name, age)
	}
}

func (a *App) newSyncCmd() *cobra.Command {
	var opts syncOptions
	var outFile string

	cmd := &cobra.Command{
		Use:   config.CmdSync,
		Short: config.CmdSyncShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ics, _, today, err := a.runSync(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outFile, ics, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteFeedFile, err)
			}
			slog.Info(config.MsgFeedWritten,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyFile, outFile,
				config.LogKeySizeBytes, len(ics),
			)

			a.println(a.tr.MsgData(config.TKeySyncDone, map[string]any{
				"Path":  outFile,
				"Today": today,
			}))
			return nil
		},
	}

	addSyncFlags(cmd, &opts)
	cmd.Flags().StringVar(&outFile, config.FlagOut, config.DefaultOutFile, config.FlagDescOut)
	return cmd
}

func (a *App) runSync(ctx context.Context, opts syncOptions) ([]byte, []engine.Entry, int, error) {
	return a.newGenerator().RunSync(ctx, opts.config())
}
