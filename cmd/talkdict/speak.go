package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/talkdict/internal/speech"
)

func newSpeakCommand() *cobra.Command {
	var meaning bool

	command := &cobra.Command{
		Use:   "speak TEXT...",
		Short: "Speak text with the word voice, or the meaning voice with --meaning",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			narrator, err := speech.New(cfg.Speech)
			if err != nil {
				return fmt.Errorf("speech.New > %w", err)
			}

			text := strings.Join(args, " ")
			if meaning {
				return narrator.SpeakMeaning(cmd.Context(), text)
			}
			return narrator.SpeakWord(cmd.Context(), text)
		},
	}
	command.Flags().BoolVar(&meaning, "meaning", false, "use the meaning voice")
	return command
}
