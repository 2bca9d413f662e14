package speech

import (
	"context"
	"fmt"

	"github.com/jfreymuth/pulse"
)

// Player plays mono 16-bit samples and blocks until they have drained.
type Player interface {
	Play(ctx context.Context, samples []int16, sampleRate int) error
}

// PulsePlayer plays audio through the PulseAudio (or PipeWire-pulse) server.
type PulsePlayer struct {
	applicationName string
}

func NewPulsePlayer(applicationName string) *PulsePlayer {
	return &PulsePlayer{applicationName: applicationName}
}

func (player *PulsePlayer) Play(ctx context.Context, samples []int16, sampleRate int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(samples) == 0 {
		return nil
	}

	client, err := pulse.NewClient(
		pulse.ClientApplicationName(player.applicationName),
	)
	if err != nil {
		return fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	stream, err := client.NewPlayback(
		sampleReader(samples),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.1),
		pulse.PlaybackMediaName(player.applicationName+" speech"),
	)
	if err != nil {
		return fmt.Errorf("create pulse playback stream: %w", err)
	}
	defer stream.Close()

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("play speech stream: %w", err)
	}
	return nil
}

func sampleReader(samples []int16) pulse.Int16Reader {
	cursor := 0
	return pulse.Int16Reader(func(buf []int16) (int, error) {
		if cursor >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[cursor:])
		cursor += n
		if cursor >= len(samples) {
			return n, pulse.EndOfData
		}
		return n, nil
	})
}
