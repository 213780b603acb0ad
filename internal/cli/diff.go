package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mdc/internal/config"
)

func (a *App) newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdDiff,
		Short: config.CmdDiffShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDateArg(args[0], false)
			if err != nil {
				return err
			}
			end, err := parseDateArg(args[1], false)
			if err != nil {
				return err
			}
			a.println(a.tr.MsgData(config.TKeyDiffResult, map[string]any{
				"Start":  start.String(),
				"End":    end.String(),
				"Period": start.Until(end).String(),
			}))
			return nil
		},
	}
	return cmd
}
