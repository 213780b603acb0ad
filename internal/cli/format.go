package cli

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mdc/internal/config"
)

func (a *App) newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdFormat,
		Short: config.CmdFormatShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateArg(args[0], false)
			if err != nil {
				return err
			}
			out, err := d.Format(args[1])
			if err != nil {
				return err
			}
			a.println(out)
			return nil
		},
	}
	return cmd
}
