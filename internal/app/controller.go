// Package app holds the button handlers shared by the terminal window and line mode.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/talkdict/internal/dictionary"
	"github.com/at-ishikawa/talkdict/internal/speech"
)

const (
	ConfirmTitle = "Confirm"
	InfoTitle    = "Information"
	ErrorTitle   = "Error"

	MessageTypeCorrectWord = "Please type a correct word"
	MessageWordNotFound    = "The word doesn't exist. Please double check it."
	MessageExit            = "Do you want to exit?"
)

// View is the widget surface the controller writes to.
// Confirm may return before done is called.
type View interface {
	Input() string
	SetInput(text string)
	Display() string
	SetDisplay(text string)
	Confirm(title, message string, done func(yes bool))
	Info(title, message string)
	Error(title, message string)
	Quit()
}

type Controller struct {
	store    dictionary.Store
	matcher  *dictionary.Matcher
	narrator *speech.Narrator
	view     View
}

func NewController(
	store dictionary.Store,
	matcher *dictionary.Matcher,
	narrator *speech.Narrator,
	view View,
) *Controller {
	return &Controller{
		store:    store,
		matcher:  matcher,
		narrator: narrator,
		view:     view,
	}
}

// Search reloads the dictionary and resolves the input field.
func (c *Controller) Search(ctx context.Context) error {
	d, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("store.Load > %w", err)
	}

	resolution := dictionary.Resolve(d, c.view.Input(), c.matcher)
	slog.Default().Debug("search",
		"word", resolution.Word,
		"outcome", resolution.Outcome.String(),
		"match", resolution.Match,
		"alternatives", resolution.Alternatives,
	)

	switch resolution.Outcome {
	case dictionary.Found:
		c.view.SetDisplay(dictionary.FormatDefinitions(resolution.Definitions))
	case dictionary.Suggested:
		message := fmt.Sprintf("Did you mean %s instead?", resolution.Match)
		c.view.Confirm(ConfirmTitle, message, func(yes bool) {
			if yes {
				c.view.SetDisplay(dictionary.FormatDefinitions(resolution.Definitions))
				return
			}
			c.view.SetDisplay("")
			c.view.SetInput("")
			c.view.Info(InfoTitle, MessageTypeCorrectWord)
		})
	default:
		c.view.SetDisplay("")
		c.view.SetInput("")
		c.view.Error(ErrorTitle, MessageWordNotFound)
	}
	return nil
}

func (c *Controller) SpeakWord(ctx context.Context) error {
	if err := c.narrator.SpeakWord(ctx, c.view.Input()); err != nil {
		return fmt.Errorf("narrator.SpeakWord > %w", err)
	}
	return nil
}

// SpeakMeaning reads the display region without its bullets.
func (c *Controller) SpeakMeaning(ctx context.Context) error {
	if err := c.narrator.SpeakMeaning(ctx, dictionary.StripBullets(c.view.Display())); err != nil {
		return fmt.Errorf("narrator.SpeakMeaning > %w", err)
	}
	return nil
}

func (c *Controller) Clear() {
	c.view.SetInput("")
	c.view.SetDisplay("")
}

func (c *Controller) Exit() {
	c.view.Confirm(ConfirmTitle, MessageExit, func(yes bool) {
		if yes {
			c.view.Quit()
		}
	})
}
