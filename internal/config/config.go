// Package config loads arena configuration from HCL files and the
// environment.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// EnvAPIKey is the default environment variable consulted for the LLM
// provider API key.
const EnvAPIKey = "OPENROUTER_API_KEY"

// Config represents the complete arena configuration
type Config struct {
	Arena  ArenaSettings `hcl:"arena,block"`
	LLM    LLMSettings   `hcl:"llm,block"`
	Models []ModelConfig `hcl:"model,block"`
}

// ArenaSettings contains table and tournament parameters
type ArenaSettings struct {
	StartingStack      int     `hcl:"starting_stack,optional"`
	SmallBlind         int     `hcl:"small_blind,optional"`
	BigBlind           int     `hcl:"big_blind,optional"`
	Ante               int     `hcl:"ante,optional"`
	HandsPerMatch      int     `hcl:"hands_per_match,optional"`
	MaxHands           int     `hcl:"max_hands,optional"`
	UseBlindStructure  bool    `hcl:"use_blind_structure,optional"`
	HandsPerBlindLevel int     `hcl:"hands_per_blind_level,optional"`
	BlindMultiplier    float64 `hcl:"blind_multiplier,optional"`
	Parallelism        int     `hcl:"parallelism,optional"`
	Seed               int64   `hcl:"seed,optional"`
	RatingsFile        string  `hcl:"ratings_file,optional"`
	LogLevel           string  `hcl:"log_level,optional"`
}

// LLMSettings contains provider-level configuration shared by all models
type LLMSettings struct {
	BaseURL        string  `hcl:"base_url,optional"`
	APIKeyEnv      string  `hcl:"api_key_env,optional"`
	TimeoutSeconds int     `hcl:"timeout_seconds,optional"`
	MaxRetries     int     `hcl:"max_retries,optional"`
	Temperature    float64 `hcl:"temperature,optional"`
	EquitySamples  int     `hcl:"equity_samples,optional"`
}

// ModelConfig overrides per-model behaviour. The label is the provider-prefixed
// model identifier, e.g. "openai/gpt-4o".
type ModelConfig struct {
	Name         string  `hcl:"name,label"`
	SystemPrompt string  `hcl:"system_prompt,optional"`
	Temperature  float64 `hcl:"temperature,optional"`
	DisableTools bool    `hcl:"disable_tools,optional"`
	AgentURL     string  `hcl:"agent_url,optional"`
}

// Default returns the standard arena configuration
func Default() *Config {
	return &Config{
		Arena: ArenaSettings{
			StartingStack:      1_500_000,
			SmallBlind:         5_000,
			BigBlind:           10_000,
			HandsPerMatch:      100,
			MaxHands:           1000,
			HandsPerBlindLevel: 20,
			BlindMultiplier:    1.5,
			Parallelism:        1,
			Seed:               42,
			RatingsFile:        "elo_ratings.json",
			LogLevel:           "info",
		},
		LLM: LLMSettings{
			BaseURL:        "https://openrouter.ai/api/v1",
			APIKeyEnv:      EnvAPIKey,
			TimeoutSeconds: 30,
			MaxRetries:     3,
			Temperature:    0.7,
			EquitySamples:  1000,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a present file is decoded and back-filled with them.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	def := Default()

	if c.Arena.StartingStack == 0 {
		c.Arena.StartingStack = def.Arena.StartingStack
	}
	if c.Arena.SmallBlind == 0 {
		c.Arena.SmallBlind = def.Arena.SmallBlind
	}
	if c.Arena.BigBlind == 0 {
		c.Arena.BigBlind = def.Arena.BigBlind
	}
	if c.Arena.HandsPerMatch == 0 {
		c.Arena.HandsPerMatch = def.Arena.HandsPerMatch
	}
	if c.Arena.MaxHands == 0 {
		c.Arena.MaxHands = def.Arena.MaxHands
	}
	if c.Arena.HandsPerBlindLevel == 0 {
		c.Arena.HandsPerBlindLevel = def.Arena.HandsPerBlindLevel
	}
	if c.Arena.BlindMultiplier == 0 {
		c.Arena.BlindMultiplier = def.Arena.BlindMultiplier
	}
	if c.Arena.Parallelism == 0 {
		c.Arena.Parallelism = def.Arena.Parallelism
	}
	if c.Arena.Seed == 0 {
		c.Arena.Seed = def.Arena.Seed
	}
	if c.Arena.RatingsFile == "" {
		c.Arena.RatingsFile = def.Arena.RatingsFile
	}
	if c.Arena.LogLevel == "" {
		c.Arena.LogLevel = def.Arena.LogLevel
	}

	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = def.LLM.BaseURL
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = def.LLM.APIKeyEnv
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = def.LLM.TimeoutSeconds
	}
	if c.LLM.MaxRetries == 0 {
		c.LLM.MaxRetries = def.LLM.MaxRetries
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = def.LLM.Temperature
	}
	if c.LLM.EquitySamples == 0 {
		c.LLM.EquitySamples = def.LLM.EquitySamples
	}
}

// Validate validates the arena configuration
func (c *Config) Validate() error {
	if c.Arena.StartingStack <= 0 {
		return fmt.Errorf("starting stack must be positive")
	}
	if c.Arena.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Arena.BigBlind <= c.Arena.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Arena.StartingStack < c.Arena.BigBlind {
		return fmt.Errorf("starting stack must cover at least one big blind")
	}
	if c.Arena.BlindMultiplier <= 1 {
		return fmt.Errorf("blind multiplier must be greater than 1")
	}
	if c.Arena.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	for _, m := range c.Models {
		if m.Name == "" {
			return fmt.Errorf("model block requires a name label")
		}
		if m.Temperature < 0 || m.Temperature > 2 {
			return fmt.Errorf("model %s: temperature must be between 0 and 2", m.Name)
		}
	}
	return nil
}

// APIKey resolves the provider API key from the configured environment
// variable.
func (c *Config) APIKey() (string, error) {
	key := os.Getenv(c.LLM.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s environment variable is required", c.LLM.APIKeyEnv)
	}
	return key, nil
}

// ModelByName returns the per-model overrides for a model, if configured.
func (c *Config) ModelByName(name string) *ModelConfig {
	for i := range c.Models {
		if c.Models[i].Name == name {
			return &c.Models[i]
		}
	}
	return nil
}
