package speech

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	name  string
	args  []string
	stdin string
	err   error
}

func (r *fakeRunner) Run(_ context.Context, stdin io.Reader, name string, args ...string) error {
	r.name = name
	r.args = args
	if stdin != nil {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		r.stdin = string(b)
	}
	return r.err
}

func TestEspeakSpeaker_Say(t *testing.T) {
	tests := []struct {
		name      string
		binary    string
		rate      int
		text      string
		voice     string
		runnerErr error
		wantName  string
		wantArgs  []string
		wantErr   bool
	}{
		{
			name:     "voice and rate",
			binary:   "espeak",
			rate:     150,
			text:     "apple",
			voice:    "en-us",
			wantName: "espeak",
			wantArgs: []string{"--stdin", "-v", "en-us", "-s", "150"},
		},
		{
			name:     "default binary without rate",
			text:     "-not a flag",
			voice:    "en-us+f3",
			wantName: "espeak-ng",
			wantArgs: []string{"--stdin", "-v", "en-us+f3"},
		},
		{
			name:      "runner failure",
			binary:    "espeak",
			text:      "apple",
			runnerErr: errors.New("exit status 1"),
			wantName:  "espeak",
			wantArgs:  []string{"--stdin"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{err: tt.runnerErr}
			speaker := NewEspeakSpeaker(tt.binary, tt.rate, WithCommandRunner(runner))

			err := speaker.Say(context.Background(), tt.text, tt.voice)
			assert.Equal(t, tt.wantName, runner.name)
			assert.Equal(t, tt.wantArgs, runner.args)
			assert.Equal(t, tt.text, runner.stdin)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "runner.Run")
				return
			}
			assert.NoError(t, err)
		})
	}
}
