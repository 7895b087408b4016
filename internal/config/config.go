package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig `yaml:"server"`
	Gemini      GeminiConfig `yaml:"gemini"`
	Scrape      ScrapeConfig `yaml:"scrape"`
	Speech      SpeechConfig `yaml:"speech"`
	Log         LogConfig    `yaml:"log"`
	Environment string       `yaml:"environment"`

	// APIToken guards the persona endpoints when set. Secrets never live in
	// the YAML file; this comes from the environment only.
	APIToken string `yaml:"-"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type GeminiConfig struct {
	APIKey string `yaml:"-"`
	Model  string `yaml:"model"`
}

type ScrapeConfig struct {
	APIKey  string `yaml:"-"`
	BaseURL string `yaml:"base_url"`
}

type SpeechConfig struct {
	APIKey  string `yaml:"-"`
	VoiceID string `yaml:"voice_id"`
	Model   string `yaml:"model"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		Log: LogConfig{
			Level: "info",
		},
		Environment: "development",
	}
}

// Load reads configuration by precedence: built-in defaults, then the YAML
// config file ($CONFIG_FILE, default config.yaml, missing file allowed),
// then environment variables. A .env file in the working directory is
// loaded first so local runs need no exported shell state.
func Load() (Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment is a complete configuration.
	default:
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Gemini.APIKey == "" {
		return Config{}, fmt.Errorf("missing required config: Gemini API key. Set GEMINI_API_KEY")
	}
	if cfg.Speech.APIKey == "" {
		return Config{}, fmt.Errorf("missing required config: ElevenLabs API key. Set ELEVENLABS_API_KEY")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PERSONAFORGE_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PERSONAFORGE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PERSONAFORGE_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("PERSONAFORGE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PERSONAFORGE_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("FIRECRAWL_API_KEY"); v != "" {
		cfg.Scrape.APIKey = v
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		cfg.Speech.APIKey = v
	}
	if v := os.Getenv("ELEVENLABS_VOICE_ID"); v != "" {
		cfg.Speech.VoiceID = v
	}
}

// Production reports whether error detail should be redacted in responses.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}
