package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/talkdict/internal/cli"
)

func newLookupCommand() *cobra.Command {
	var speak bool

	command := &cobra.Command{
		Use:   "lookup [WORD...]",
		Short: "Look up words without the window, or start an interactive prompt when no word is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			view := cli.NewLineView(cmd.InOrStdin(), cmd.OutOrStdout())
			controller, release, err := newController(cfg, view)
			if err != nil {
				return err
			}
			defer release()

			if len(args) == 0 {
				return view.Session(cmd.Context(), controller, speak)
			}
			return view.Lookup(cmd.Context(), controller, args, speak)
		},
	}
	command.Flags().BoolVar(&speak, "speak", false, "speak the word and its meaning after each lookup")
	return command
}
