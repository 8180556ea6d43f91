// Package config loads the optional HCL configuration file and
// resolves every setting against its environment-variable fallback,
// following the same hclsimple.DecodeFile pattern used for ruleset
// configuration elsewhere in this codebase. The tool runs zero-config against
// platform-default paths when no file is present.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// rawConfig is the configuration file as decoded. Every block is optional
// in the HCL file, using pointer-typed blocks the same way optional
// HCL blocks are handled elsewhere (*LLMConfig, *EmbeddingsConfig): an absent block decodes to a
// nil pointer, and Load fills in the zero-value struct before applying
// defaults.
type rawConfig struct {
	Paths      *PathsConfig      `hcl:"paths,block"`
	Remote     *RemoteConfig     `hcl:"remote,block"`
	Embedder   *EmbedderConfig   `hcl:"embedder,block"`
	Throttle   *ThrottleConfig   `hcl:"throttle,block"`
	Summarizer *SummarizerConfig `hcl:"summarizer,block"`
}

// Config is the fully resolved configuration with every block present
// (defaulted where absent from the file).
type Config struct {
	Paths      PathsConfig
	Remote     RemoteConfig
	Embedder   EmbedderConfig
	Throttle   ThrottleConfig
	Summarizer SummarizerConfig
}

// PathsConfig overrides the platform-default data directory.
type PathsConfig struct {
	DataDir string `hcl:"data_dir,optional"`
}

// RemoteConfig configures the remote document service client.
type RemoteConfig struct {
	BaseURL  string `hcl:"base_url,optional"`
	TokenEnv string `hcl:"token_env,optional"`
}

// EmbedderConfig selects and configures the embedder backend.
type EmbedderConfig struct {
	Provider   string `hcl:"provider,optional"` // "mock" | "ollama" | "bedrock"
	Model      string `hcl:"model,optional"`
	Dimensions int    `hcl:"dimensions,optional"`
	OllamaURL  string `hcl:"ollama_url,optional"`
	Region     string `hcl:"region,optional"`
}

// ThrottleConfig bounds the inter-POST delay applied by pkg/remote.
type ThrottleConfig struct {
	MinMillis int `hcl:"min_millis,optional"`
	MaxMillis int `hcl:"max_millis,optional"`
}

// SummarizerConfig selects and configures the optional summarizer.
type SummarizerConfig struct {
	Model      string `hcl:"model,optional"`
	ChunkChars int    `hcl:"chunk_chars,optional"`
}

const (
	defaultEmbedderProvider   = "mock"
	defaultEmbedderDimensions = 256
	defaultSummarizerChunk    = 6000
	defaultRemoteTokenEnv     = "GRANOLASYNC_TOKEN"
)

// Load reads path (an HCL file) if it exists, applies defaults and
// environment-variable overrides, and validates the result. An empty
// path is valid: Load then returns the all-defaults configuration.
func Load(path string) (Config, error) {
	var raw rawConfig

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
				return Config{}, fmt.Errorf("parse configuration file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat configuration file %s: %w", path, err)
		}
	}

	cfg := fromRaw(raw)

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fromRaw projects a partially-present rawConfig (nil blocks where the
// HCL file omitted them) into a fully-populated Config.
func fromRaw(raw rawConfig) Config {
	var cfg Config
	if raw.Paths != nil {
		cfg.Paths = *raw.Paths
	}
	if raw.Remote != nil {
		cfg.Remote = *raw.Remote
	}
	if raw.Embedder != nil {
		cfg.Embedder = *raw.Embedder
	}
	if raw.Throttle != nil {
		cfg.Throttle = *raw.Throttle
	}
	if raw.Summarizer != nil {
		cfg.Summarizer = *raw.Summarizer
	}
	return cfg
}

// applyEnvOverrides lets environment variables win over an absent HCL
// value, the same os.LookupEnv fallback idiom the CLI agent commands use.
func applyEnvOverrides(cfg *Config) {
	if cfg.Remote.BaseURL == "" {
		if v, ok := os.LookupEnv("GRANOLASYNC_REMOTE_URL"); ok {
			cfg.Remote.BaseURL = v
		}
	}
	if cfg.Remote.TokenEnv == "" {
		if v, ok := os.LookupEnv("GRANOLASYNC_TOKEN_ENV"); ok {
			cfg.Remote.TokenEnv = v
		}
	}
	if cfg.Embedder.Provider == "" {
		if v, ok := os.LookupEnv("GRANOLASYNC_EMBEDDER_PROVIDER"); ok {
			cfg.Embedder.Provider = v
		}
	}
	if cfg.Paths.DataDir == "" {
		if v, ok := os.LookupEnv("GRANOLASYNC_DATA_DIR"); ok {
			cfg.Paths.DataDir = v
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Embedder.Provider == "" {
		cfg.Embedder.Provider = defaultEmbedderProvider
	}
	if cfg.Embedder.Dimensions == 0 {
		cfg.Embedder.Dimensions = defaultEmbedderDimensions
	}
	if cfg.Summarizer.ChunkChars == 0 {
		cfg.Summarizer.ChunkChars = defaultSummarizerChunk
	}
	if cfg.Remote.TokenEnv == "" {
		cfg.Remote.TokenEnv = defaultRemoteTokenEnv
	}
}

// ResolveToken reads the bearer token from the environment variable
// named by cfg.Remote.TokenEnv.
func (c Config) ResolveToken() (string, error) {
	token := os.Getenv(c.Remote.TokenEnv)
	if token == "" {
		return "", fmt.Errorf("remote token not set: environment variable %s is empty", c.Remote.TokenEnv)
	}
	return token, nil
}

// ThrottleDurations converts the configured millisecond bounds to
// time.Duration values for pkg/remote.Client.SetThrottle.
func (t ThrottleConfig) ThrottleDurations() (time.Duration, time.Duration) {
	return time.Duration(t.MinMillis) * time.Millisecond, time.Duration(t.MaxMillis) * time.Millisecond
}

// validate checks the resolved configuration with ozzo-validation,
// one ValidateStruct Field rule per constrained field.
func validate(cfg Config) error {
	if err := validation.ValidateStruct(&cfg.Embedder,
		validation.Field(&cfg.Embedder.Provider, validation.Required, validation.In("mock", "ollama", "bedrock")),
		validation.Field(&cfg.Embedder.Dimensions, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("embedder configuration: %w", err)
	}

	if err := validation.ValidateStruct(&cfg.Throttle,
		validation.Field(&cfg.Throttle.MinMillis, validation.Min(0)),
		validation.Field(&cfg.Throttle.MaxMillis, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("throttle configuration: %w", err)
	}
	if cfg.Throttle.MaxMillis > 0 && cfg.Throttle.MinMillis > cfg.Throttle.MaxMillis {
		return fmt.Errorf("throttle configuration: min_millis (%d) exceeds max_millis (%d)", cfg.Throttle.MinMillis, cfg.Throttle.MaxMillis)
	}

	if cfg.Remote.BaseURL != "" {
		if u, err := url.Parse(cfg.Remote.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("remote configuration: base_url %q is not a well-formed URL", cfg.Remote.BaseURL)
		}
	}

	return nil
}
