package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	SourceFile  = "file"
	SourceMySQL = "mysql"

	EngineEspeak = "espeak"
	EngineOpenAI = "openai"
)

type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Lookup     LookupConfig     `mapstructure:"lookup"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

type DictionaryConfig struct {
	Source string `mapstructure:"source" validate:"required,oneof=file mysql"`
	// Path is read on every search, so it is not required to exist at startup.
	Path string `mapstructure:"path" validate:"required_if=Source file,omitempty,dictfile"`
}

type LookupConfig struct {
	Cutoff         float64 `mapstructure:"cutoff" validate:"gte=0,lte=1"`
	MaxSuggestions int     `mapstructure:"max_suggestions" validate:"gt=0"`
}

type SpeechConfig struct {
	Engine       string       `mapstructure:"engine" validate:"required,oneof=espeak openai"`
	WordVoice    string       `mapstructure:"word_voice" validate:"required"`
	MeaningVoice string       `mapstructure:"meaning_voice" validate:"required"`
	Rate         int          `mapstructure:"rate" validate:"gt=0"`
	Espeak       EspeakConfig `mapstructure:"espeak"`
	OpenAI       OpenAIConfig `mapstructure:"openai"`
}

type EspeakConfig struct {
	Binary string `mapstructure:"binary"`
}

type OpenAIConfig struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	BaseURL          string `mapstructure:"base_url" validate:"omitempty,url"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
	// CacheDirectory stores synthesized audio when set.
	CacheDirectory string `mapstructure:"cache_directory"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/talkdict")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("dictionary.source", SourceFile)
	v.SetDefault("dictionary.path", "data.json")
	v.SetDefault("lookup.cutoff", 0.6)
	v.SetDefault("lookup.max_suggestions", 3)
	v.SetDefault("speech.engine", EngineEspeak)
	v.SetDefault("speech.word_voice", "en-us")
	v.SetDefault("speech.meaning_voice", "en-us+f3")
	v.SetDefault("speech.rate", 150)
	v.SetDefault("speech.espeak.binary", "espeak-ng")
	v.SetDefault("speech.openai.model", "gpt-4o-mini-tts")
	v.SetDefault("speech.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("speech.openai.max_retry_attempts", 3)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "talkdict")
	v.SetDefault("database.username", "talkdict")

	// Secrets are bound to environment variables only
	if err := v.BindEnv("speech.openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "TALKDICT_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind TALKDICT_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("validator.Struct > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}
	if cfg.Speech.Engine == EngineOpenAI && cfg.Speech.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("invalid configuration: OPENAI_API_KEY environment variable is required for the %s speech engine", EngineOpenAI)
	}

	return &cfg, nil
}

// Load is a shorthand for NewConfigLoader(configFile).Load().
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}
