package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/talkdict/internal/app"
	"github.com/at-ishikawa/talkdict/internal/dictionary"
	"github.com/fatih/color"
)

// LineView implements app.View on a line-oriented terminal.
type LineView struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	input        string
	display      string
	quit         bool

	bold   *color.Color
	bullet *color.Color
	info   *color.Color
	alert  *color.Color
}

func NewLineView(stdin io.Reader, stdout io.Writer) *LineView {
	return &LineView{
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		bullet:       color.New(color.FgGreen),
		info:         color.New(color.FgYellow),
		alert:        color.New(color.FgRed),
	}
}

func (v *LineView) Input() string {
	return v.input
}

func (v *LineView) SetInput(text string) {
	v.input = text
}

func (v *LineView) Display() string {
	return v.display
}

// SetDisplay prints non-empty text as it is stored.
func (v *LineView) SetDisplay(text string) {
	v.display = text
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if rest, ok := strings.CutPrefix(line, dictionary.Bullet); ok {
			_, _ = v.bullet.Fprint(v.stdoutWriter, dictionary.Bullet)
			_, _ = fmt.Fprintln(v.stdoutWriter, rest)
			continue
		}
		_, _ = fmt.Fprintln(v.stdoutWriter, line)
	}
}

// Confirm answers no on anything but y or yes, including end of input.
func (v *LineView) Confirm(_ string, message string, done func(yes bool)) {
	_, _ = v.bold.Fprintf(v.stdoutWriter, "%s [y/N]: ", message)
	answer, err := v.readLine()
	if err != nil {
		_, _ = fmt.Fprintln(v.stdoutWriter)
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		done(true)
	default:
		done(false)
	}
}

func (v *LineView) Info(title, message string) {
	_, _ = v.info.Fprintf(v.stdoutWriter, "%s: %s\n", title, message)
}

func (v *LineView) Error(title, message string) {
	_, _ = v.alert.Fprintf(v.stdoutWriter, "%s: %s\n", title, message)
}

func (v *LineView) Quit() {
	v.quit = true
}

func (v *LineView) readLine() (string, error) {
	line, err := v.stdinReader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return strings.TrimSpace(line), err
	}
	return strings.TrimSpace(line), nil
}

// Lookup searches each word in turn and optionally reads the result aloud.
func (v *LineView) Lookup(ctx context.Context, controller *app.Controller, words []string, speak bool) error {
	for _, word := range words {
		if err := v.lookup(ctx, controller, word, speak); err != nil {
			return err
		}
	}
	return nil
}

// Session prompts for words until end of input or Quit.
func (v *LineView) Session(ctx context.Context, controller *app.Controller, speak bool) error {
	for !v.quit {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		_, _ = v.bold.Fprint(v.stdoutWriter, "Enter Word: ")
		word, err := v.readLine()
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(v.stdoutWriter)
			return nil
		}
		if err != nil {
			return fmt.Errorf("stdinReader.ReadString > %w", err)
		}
		if word == "" {
			continue
		}
		if err := v.lookup(ctx, controller, word, speak); err != nil {
			return err
		}
	}
	return nil
}

func (v *LineView) lookup(ctx context.Context, controller *app.Controller, word string, speak bool) error {
	controller.Clear()
	v.SetInput(word)
	if err := controller.Search(ctx); err != nil {
		return fmt.Errorf("controller.Search(%s) > %w", word, err)
	}
	if !speak || v.display == "" {
		return nil
	}
	if err := controller.SpeakWord(ctx); err != nil {
		return fmt.Errorf("controller.SpeakWord > %w", err)
	}
	if err := controller.SpeakMeaning(ctx); err != nil {
		return fmt.Errorf("controller.SpeakMeaning > %w", err)
	}
	return nil
}
