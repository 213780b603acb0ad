package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mdc/internal/calendar"
	"github.com/tartampluch/go-mdc/internal/config"
)

func (a *App) newTodayCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   config.CmdToday,
		Short: config.CmdTodayShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := calendar.Today(a.Clock)
			mdc, err := d.Format(pattern)
			if err != nil {
				return err
			}
			a.println(a.tr.MsgData(config.TKeyTodayIs, map[string]any{
				"MDC": mdc,
				"ISO": d.Time(a.Clock.Now().Location()).Format(config.DateFormatFullDash),
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, config.FlagPattern, config.DefaultDisplayPattern, config.FlagDescPattern)
	return cmd
}
