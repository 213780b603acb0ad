// Package cli implements the go-mdc command tree. Each subcommand is a
// thin shell over the calendar core, the sync engine, or the feed
// server; output strings go through the embedded locale bundle.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mdc/internal/calendar"
	"github.com/tartampluch/go-mdc/internal/config"
)

// App carries the dependencies shared by all subcommands.
type App struct {
	Clock    calendar.Clock
	Out      io.Writer
	LogLevel *slog.LevelVar

	tr *Translator
}

// Execute builds the command tree and runs it. The level var lets the
// persistent --debug flag raise log verbosity after logging has been
// initialized by main.
func Execute(ctx context.Context, out io.Writer, level *slog.LevelVar) error {
	app := &App{
		Clock:    calendar.RealClock{},
		Out:      out,
		LogLevel: level,
	}
	return app.NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd assembles the root command and its subcommands.
func (a *App) NewRootCmd() *cobra.Command {
	var debug bool
	var lang string

	root := &cobra.Command{
		Use:           config.RootUse,
		Short:         config.RootShort,
		Long:          config.RootLong,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug && a.LogLevel != nil {
				a.LogLevel.Set(slog.LevelDebug)
			}
			a.tr = NewTranslator(lang)
		},
	}

	root.PersistentFlags().BoolVar(&debug, config.FlagDebug, false, config.FlagDescDebug)
	root.PersistentFlags().StringVar(&lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)

	root.AddCommand(
		a.newTodayCmd(),
		a.newConvertCmd(),
		a.newDiffCmd(),
		a.newShiftCmd(),
		a.newFormatCmd(),
		a.newSyncCmd(),
		a.newServeCmd(),
	)
	return root
}

func (a *App) println(s string) {
	fmt.Fprintln(a.Out, s)
}

// parseDateArg reads a date argument in any of the accepted spellings:
// "@<epoch-day>", an ISO date like 2025-06-01, or an MDC date like
// "SE 55-06-12". With mdcOnly the ISO interpretation is skipped, which
// disambiguates inputs valid in both calendars.
func parseDateArg(arg string, mdcOnly bool) (calendar.Date, error) {
	if strings.HasPrefix(arg, config.EpochDayPrefix) {
		n, err := strconv.ParseInt(strings.TrimPrefix(arg, config.EpochDayPrefix), 10, 64)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("%s: %q", config.ErrDateParse, arg)
		}
		return calendar.FromEpochDay(n), nil
	}
	if !mdcOnly {
		if t, err := time.Parse(config.DateFormatFullDash, arg); err == nil {
			return calendar.FromTime(t), nil
		}
	}
	return calendar.Parse(arg)
}
