package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			Source: SourceFile,
			Path:   "data.json",
		},
		Lookup: LookupConfig{
			Cutoff:         0.6,
			MaxSuggestions: 3,
		},
		Speech: SpeechConfig{
			Engine:       EngineEspeak,
			WordVoice:    "en-us",
			MeaningVoice: "en-us+f3",
			Rate:         150,
			Espeak: EspeakConfig{
				Binary: "espeak-ng",
			},
			OpenAI: OpenAIConfig{
				Model:            "gpt-4o-mini-tts",
				BaseURL:          "https://api.openai.com/v1",
				MaxRetryAttempts: 3,
			},
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "talkdict",
			Username: "talkdict",
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "custom dictionary and voices",
			configContent: `dictionary:
  path: dictionaries/english.yaml
lookup:
  cutoff: 0.8
  max_suggestions: 1
speech:
  word_voice: en-gb
  meaning_voice: en-gb+m3
  rate: 120
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Dictionary.Path = "dictionaries/english.yaml"
				cfg.Lookup.Cutoff = 0.8
				cfg.Lookup.MaxSuggestions = 1
				cfg.Speech.WordVoice = "en-gb"
				cfg.Speech.MeaningVoice = "en-gb+m3"
				cfg.Speech.Rate = 120
				return cfg
			},
		},
		{
			name: "explicit config file path with mysql source",
			configContent: `dictionary:
  source: mysql
database:
  host: db.example.com
  port: 3307
`,
			useExplicitPath: true,
			env:             map[string]string{"TALKDICT_DB_PASSWORD": "secret"},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Dictionary.Source = SourceMySQL
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.Database.Password = "secret"
				return cfg
			},
		},
		{
			name: "openai engine reads api key from environment",
			configContent: `speech:
  engine: openai
  word_voice: alloy
  meaning_voice: nova
`,
			env: map[string]string{"OPENAI_API_KEY": "sk-test"},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Speech.Engine = EngineOpenAI
				cfg.Speech.WordVoice = "alloy"
				cfg.Speech.MeaningVoice = "nova"
				cfg.Speech.OpenAI.APIKey = "sk-test"
				return cfg
			},
		},
		{
			name: "openai engine without api key",
			configContent: `speech:
  engine: openai
`,
			wantErr:           true,
			wantErrorContains: []string{"OPENAI_API_KEY environment variable is required"},
		},
		{
			name: "invalid YAML format",
			configContent: `dictionary:
  path: data.json
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown source",
			configContent: `dictionary:
  source: sqlite
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "source must be one of [file mysql]"},
		},
		{
			name: "unsupported dictionary file extension",
			configContent: `dictionary:
  path: data.csv
`,
			wantErr:           true,
			wantErrorContains: []string{"dictionary.path must be a .json, .yml or .yaml file"},
		},
		{
			name: "cutoff out of range",
			configContent: `lookup:
  cutoff: 1.5
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "cutoff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			t.Setenv("TALKDICT_DB_PASSWORD", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			tempDir := t.TempDir()
			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "talkdict.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				origDir, err := os.Getwd()
				require.NoError(t, err)
				require.NoError(t, os.Chdir(tempDir))
				t.Cleanup(func() { _ = os.Chdir(origDir) })
			}

			got, err := Load(configPath)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}
