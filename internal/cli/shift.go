package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mdc/internal/calendar"
	"github.com/tartampluch/go-mdc/internal/config"
)

func (a *App) newShiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdShift,
		Short: config.CmdShiftShort,
		// Negative periods start with '-'; pass them after "--", e.g.
		// go-mdc shift "SE 55-01-01" -- -P10D
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDateArg(args[0], false)
			if err != nil {
				return err
			}
			p, err := calendar.ParsePeriod(args[1])
			if err != nil {
				return err
			}
			result, err := start.Plus(p)
			if err != nil {
				return err
			}
			a.println(a.tr.MsgData(config.TKeyShiftResult, map[string]any{
				"Start":  start.String(),
				"Period": p.String(),
				"Result": result.String(),
			}))
			return nil
		},
	}
	return cmd
}
