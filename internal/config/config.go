// Package config loads and validates the YAML configuration for convoscore.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Judge: JudgeConfig{
			Endpoint:       "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-4o",
			TimeoutSeconds: 30,
			Temperature:    0.3,
		},
		Retrieval: RetrievalConfig{
			Index:          "customer-support-rag",
			TopK:           3,
			TimeoutSeconds: 10,
		},
		Generation: GenerationConfig{
			MaxTokens:   500,
			Temperature: 0.7,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
		},
		Logging: LoggingConfig{
			Level: "info",
			Style: "pretty",
		},
	}
}
