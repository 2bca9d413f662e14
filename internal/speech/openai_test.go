package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

type recordingPlayer struct {
	samples    []int16
	sampleRate int
	calls      int
}

func (p *recordingPlayer) Play(_ context.Context, samples []int16, sampleRate int) error {
	p.calls++
	p.samples = samples
	p.sampleRate = sampleRate
	return nil
}

func TestOpenAISpeaker_Say(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0xff, 0xff, 0x00, 0x80}

	tests := []struct {
		name              string
		maxRetryAttempts  uint
		mockServerHandler func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request)
		wantCalls         int32
		wantSamples       []int16
		wantPlayed        bool
		wantErrorString   string
	}{
		{
			name:             "success",
			maxRetryAttempts: 1,
			mockServerHandler: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/audio/speech", r.URL.Path)
				assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

				var body SpeechRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, SpeechRequest{
					Model:          "gpt-4o-mini-tts",
					Input:          "apple",
					Voice:          "alloy",
					ResponseFormat: "pcm",
				}, body)

				w.Header().Set("Content-Type", "application/octet-stream")
				_, _ = w.Write(pcm)
			},
			wantCalls:   1,
			wantSamples: []int16{1, -1, -32768},
			wantPlayed:  true,
		},
		{
			name:             "retries server errors",
			maxRetryAttempts: 2,
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request) {
				if calls < 3 {
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte(`{"error":"overloaded"}`))
					return
				}
				_, _ = w.Write(pcm)
			},
			wantCalls:   3,
			wantSamples: []int16{1, -1, -32768},
			wantPlayed:  true,
		},
		{
			name:             "gives up after max retries",
			maxRetryAttempts: 1,
			mockServerHandler: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limited"}`))
			},
			wantCalls:       2,
			wantErrorString: "response error 429",
		},
		{
			name:             "client errors are not retried",
			maxRetryAttempts: 3,
			mockServerHandler: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"unknown voice"}`))
			},
			wantCalls:       1,
			wantErrorString: "response error 400",
		},
		{
			name:             "empty audio is not played",
			maxRetryAttempts: 0,
			mockServerHandler: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, calls.Add(1), w, r)
			}))
			defer server.Close()

			player := &recordingPlayer{}
			speaker := &OpenAISpeaker{
				httpClient:       resty.New().SetBaseURL(server.URL).SetHeader("Authorization", "Bearer sk-test"),
				model:            "gpt-4o-mini-tts",
				maxRetryAttempts: tt.maxRetryAttempts,
				player:           player,
			}
			defer func() { _ = speaker.Close() }()

			err := speaker.Say(context.Background(), "apple", "alloy")
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErrorString != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorString)
				assert.Equal(t, 0, player.calls)
				return
			}
			require.NoError(t, err)
			if !tt.wantPlayed {
				assert.Equal(t, 0, player.calls)
				return
			}
			assert.Equal(t, 1, player.calls)
			assert.Equal(t, tt.wantSamples, player.samples)
			assert.Equal(t, openAISampleRate, player.sampleRate)
		})
	}
}

func TestDecodePCM(t *testing.T) {
	assert.Equal(t, []int16{0x0201}, decodePCM([]byte{0x01, 0x02, 0x03}))
	assert.Empty(t, decodePCM(nil))
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  string
		want bool
	}{
		{err: "response error 500: boom", want: true},
		{err: "response error 429: slow down", want: true},
		{err: "dial tcp: connection refused", want: true},
		{err: "response error 401: unauthorized", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(assertError(tt.err)))
		})
	}
	assert.False(t, isRetryableError(nil))
}

type assertError string

func (e assertError) Error() string { return string(e) }

func TestOpenAISpeaker_Say_audioCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte{0x02, 0x00})
	}))
	defer server.Close()

	player := &recordingPlayer{}
	speaker := NewOpenAISpeaker("sk-test", "gpt-4o-mini-tts", server.URL, 0, player, WithAudioCache(NewAudioCache(t.TempDir())))
	defer func() { _ = speaker.Close() }()

	require.NoError(t, speaker.Say(context.Background(), "apple", "alloy"))
	require.NoError(t, speaker.Say(context.Background(), "apple", "alloy"))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 2, player.calls)
	assert.Equal(t, []int16{2}, player.samples)

	require.NoError(t, speaker.Say(context.Background(), "apple", "nova"))
	assert.Equal(t, int32(2), calls.Load())
}
