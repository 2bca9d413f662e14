package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	logFile    string
	source     Source
	dataFile   string
)

func main() {
	rootCommand := newRootCommand()
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	var logOutput io.WriteCloser

	rootCommand := &cobra.Command{
		Use:           "talkdict",
		Short:         "Look up words and hear them spoken",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			w, err := openLogOutput(logFile, cmd.Name() == "talkdict")
			if err != nil {
				return err
			}
			logOutput = w
			setupLogger(debugMode, w)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logOutput != nil {
				_ = logOutput.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context())
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug mode")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file (the window discards logs otherwise)")
	flags.Var(&source, "source", fmt.Sprintf("dictionary source overriding the config. Possible values are %v", allSources))
	flags.StringVar(&dataFile, "data", "", "dictionary data file overriding the config")

	rootCommand.AddCommand(
		newLookupCommand(),
		newSpeakCommand(),
		newValidateCommand(),
		newDBCommand(),
	)
	return rootCommand
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// openLogOutput keeps logs off the terminal while the window owns it.
func openLogOutput(path string, window bool) (io.WriteCloser, error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("os.OpenFile(%s) > %w", path, err)
		}
		return f, nil
	}
	if window {
		return nopWriteCloser{io.Discard}, nil
	}
	return nopWriteCloser{os.Stderr}, nil
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool, w io.Writer) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
