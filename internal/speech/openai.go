package speech

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	openAISampleRate = 24000
	pcmFormat        = "pcm"
)

// OpenAISpeaker synthesizes 16-bit mono PCM with the OpenAI speech API and hands it to a Player.
type OpenAISpeaker struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
	retryDelay       time.Duration
	player           Player
	cache            *AudioCache
}

type OpenAIOption func(*OpenAISpeaker)

// WithAudioCache reuses audio already synthesized for the same model, voice and text.
func WithAudioCache(cache *AudioCache) OpenAIOption {
	return func(speaker *OpenAISpeaker) {
		speaker.cache = cache
	}
}

func NewOpenAISpeaker(apiKey, model, baseURL string, retryAttempts uint, player Player, opts ...OpenAIOption) *OpenAISpeaker {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	speaker := &OpenAISpeaker{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
		retryDelay:       100 * time.Millisecond,
		player:           player,
	}
	for _, opt := range opts {
		opt(speaker)
	}
	return speaker
}

func (speaker *OpenAISpeaker) Close() error {
	return speaker.httpClient.Close()
}

type SpeechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	// 5xx and rate limiting
	if strings.Contains(errStr, "response error 5") || strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

func (speaker *OpenAISpeaker) Say(ctx context.Context, text, voice string) error {
	var audio []byte
	var err error
	if speaker.cache == nil {
		audio, err = speaker.synthesizeWithRetry(ctx, text, voice)
	} else {
		audio, err = speaker.cache.Fetch(audioKey(speaker.model, voice, text), func() ([]byte, error) {
			return speaker.synthesizeWithRetry(ctx, text, voice)
		})
	}
	if err != nil {
		return err
	}

	samples := decodePCM(audio)
	if len(samples) == 0 {
		return nil
	}
	if err := speaker.player.Play(ctx, samples, openAISampleRate); err != nil {
		return fmt.Errorf("player.Play > %w", err)
	}
	return nil
}

func (speaker *OpenAISpeaker) synthesizeWithRetry(ctx context.Context, text, voice string) ([]byte, error) {
	var audio []byte
	if err := retry.Do(
		func() error {
			result, err := speaker.synthesize(ctx, text, voice)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Debug("retrying speech synthesis", "error", err)
				return err
			}
			audio = result
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(speaker.maxRetryAttempts+1),
		retry.Delay(speaker.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return audio, nil
}

func (speaker *OpenAISpeaker) synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	requestBody := SpeechRequest{
		Model:          speaker.model,
		Input:          text,
		Voice:          voice,
		ResponseFormat: pcmFormat,
	}
	response, err := speaker.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		Post("/audio/speech")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return response.Bytes(), nil
}

// decodePCM reads signed 16-bit little-endian samples. A trailing odd byte is dropped.
func decodePCM(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}
