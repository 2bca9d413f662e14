// Package speech reads words and meanings aloud through a text-to-speech engine.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/talkdict/internal/config"
)

//go:generate mockgen -source=speech.go -destination=../mocks/speech/mock_speaker.go -package=mock_speech

// Speaker synthesizes text with a voice and blocks until playback ends.
type Speaker interface {
	Say(ctx context.Context, text, voice string) error
}

var ErrUnknownEngine = errors.New("unknown speech engine")

// Narrator reads the word and the meaning with two different voices.
type Narrator struct {
	speaker      Speaker
	wordVoice    string
	meaningVoice string
}

func NewNarrator(speaker Speaker, wordVoice, meaningVoice string) *Narrator {
	return &Narrator{
		speaker:      speaker,
		wordVoice:    wordVoice,
		meaningVoice: meaningVoice,
	}
}

// SpeakWord is a no-op for blank text.
func (n *Narrator) SpeakWord(ctx context.Context, word string) error {
	return n.say(ctx, word, n.wordVoice)
}

// SpeakMeaning is a no-op for blank text.
func (n *Narrator) SpeakMeaning(ctx context.Context, meaning string) error {
	return n.say(ctx, meaning, n.meaningVoice)
}

func (n *Narrator) say(ctx context.Context, text, voice string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	slog.Default().Debug("speaking", "voice", voice, "length", len(text))
	if err := n.speaker.Say(ctx, text, voice); err != nil {
		return fmt.Errorf("speaker.Say(%s) > %w", voice, err)
	}
	return nil
}

// New builds the narrator for the configured engine.
func New(cfg config.SpeechConfig) (*Narrator, error) {
	var speaker Speaker
	switch cfg.Engine {
	case config.EngineEspeak:
		speaker = NewEspeakSpeaker(cfg.Espeak.Binary, cfg.Rate)
	case config.EngineOpenAI:
		var opts []OpenAIOption
		if cfg.OpenAI.CacheDirectory != "" {
			opts = append(opts, WithAudioCache(NewAudioCache(cfg.OpenAI.CacheDirectory)))
		}
		speaker = NewOpenAISpeaker(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.BaseURL,
			cfg.OpenAI.MaxRetryAttempts,
			NewPulsePlayer("talkdict"),
			opts...,
		)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
	}
	return NewNarrator(speaker, cfg.WordVoice, cfg.MeaningVoice), nil
}
