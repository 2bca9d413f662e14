package speech

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// CommandRunner runs an external program to completion with stdin attached.
type CommandRunner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// EspeakSpeaker delegates to the espeak or espeak-ng binary.
type EspeakSpeaker struct {
	binary string
	rate   int
	runner CommandRunner
}

type EspeakOption func(*EspeakSpeaker)

func WithCommandRunner(runner CommandRunner) EspeakOption {
	return func(s *EspeakSpeaker) {
		s.runner = runner
	}
}

func NewEspeakSpeaker(binary string, rate int, opts ...EspeakOption) *EspeakSpeaker {
	if binary == "" {
		binary = "espeak-ng"
	}
	s := &EspeakSpeaker{
		binary: binary,
		rate:   rate,
		runner: execRunner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Say passes text on stdin so it is never parsed as a flag.
func (s *EspeakSpeaker) Say(ctx context.Context, text, voice string) error {
	args := []string{"--stdin"}
	if voice != "" {
		args = append(args, "-v", voice)
	}
	if s.rate > 0 {
		args = append(args, "-s", strconv.Itoa(s.rate))
	}
	if err := s.runner.Run(ctx, strings.NewReader(text), s.binary, args...); err != nil {
		return fmt.Errorf("runner.Run > %w", err)
	}
	return nil
}
