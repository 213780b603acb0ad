package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mdc/internal/calendar"
	"github.com/tartampluch/go-mdc/internal/config"
)

func (a *App) newConvertCmd() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   config.CmdConvert,
		Short: config.CmdConvertShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := args[0]

			// Forward direction: ISO or epoch-day input, MDC output.
			if !reverse {
				if t, err := time.Parse(config.DateFormatFullDash, arg); err == nil {
					d := calendar.FromTime(t)
					a.println(a.tr.MsgData(config.TKeyConverted, map[string]any{
						"ISO": arg,
						"MDC": d.String(),
					}))
					return nil
				}
			}

			d, err := parseDateArg(arg, reverse)
			if err != nil {
				return err
			}
			a.println(a.tr.MsgData(config.TKeyConvertedToISO, map[string]any{
				"MDC":   d.String(),
				"ISO":   d.Time(time.UTC).Format(config.DateFormatFullDash),
				"Epoch": d.EpochDay(),
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reverse, config.FlagReverse, false, config.FlagDescReverse)
	return cmd
}
