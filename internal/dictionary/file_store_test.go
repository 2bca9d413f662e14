package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Load(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		content     string
		skipCreate  bool
		want        Dictionary
		wantErrText string
	}{
		{
			name:     "json object",
			fileName: "data.json",
			content:  `{"hello": ["a greeting"], "world": ["the earth", "all people"]}`,
			want: Dictionary{
				"hello": {"a greeting"},
				"world": {"the earth", "all people"},
			},
		},
		{
			name:     "yaml mapping",
			fileName: "data.yaml",
			content: `hello:
  - a greeting
world:
  - the earth
  - all people
`,
			want: Dictionary{
				"hello": {"a greeting"},
				"world": {"the earth", "all people"},
			},
		},
		{
			name:     "yml extension is yaml",
			fileName: "data.yml",
			content:  "hello: [a greeting]\n",
			want:     Dictionary{"hello": {"a greeting"}},
		},
		{
			name:     "empty object",
			fileName: "data.json",
			content:  `{}`,
			want:     Dictionary{},
		},
		{
			name:        "malformed json",
			fileName:    "data.json",
			content:     `{"hello": ["a greeting"`,
			wantErrText: "json.Unmarshal",
		},
		{
			name:        "definitions are not a list",
			fileName:    "data.json",
			content:     `{"hello": "a greeting"}`,
			wantErrText: "json.Unmarshal",
		},
		{
			name:        "missing file",
			fileName:    "data.json",
			skipCreate:  true,
			wantErrText: "os.ReadFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.fileName)
			if !tt.skipCreate {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			}

			store := NewFileStore(path)
			assert.Equal(t, path, store.Path())

			got, err := store.Load(context.Background())
			if tt.wantErrText != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrText)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileStore_LoadReadsFileOnEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hello": ["a greeting"]}`), 0644))

	store := NewFileStore(path)
	first, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Dictionary{"hello": {"a greeting"}}, first)

	require.NoError(t, os.WriteFile(path, []byte(`{"hello": ["a greeting", "an exclamation"]}`), 0644))
	second, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Dictionary{"hello": {"a greeting", "an exclamation"}}, second)
}

func TestFileStore_LoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileStore(filepath.Join(t.TempDir(), "data.json")).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
