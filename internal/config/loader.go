package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so API keys can be stored as ${ENV_VAR}.
func expandSensitiveFields(cfg *Config) {
	cfg.Judge.APIKey = expandEnvVars(cfg.Judge.APIKey)
	cfg.Retrieval.APIKey = expandEnvVars(cfg.Retrieval.APIKey)
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Judge.Endpoint == "" {
		cfg.Judge.Endpoint = "https://api.openai.com/v1/chat/completions"
	}
	if cfg.Judge.Model == "" {
		cfg.Judge.Model = "gpt-4o"
	}
	if cfg.Judge.TimeoutSeconds == 0 {
		cfg.Judge.TimeoutSeconds = 30
	}
	if cfg.Judge.Temperature == 0 {
		cfg.Judge.Temperature = 0.3
	}
	if cfg.Retrieval.Index == "" {
		cfg.Retrieval.Index = "customer-support-rag"
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.TimeoutSeconds == 0 {
		cfg.Retrieval.TimeoutSeconds = 10
	}
	if cfg.Generation.MaxTokens == 0 {
		cfg.Generation.MaxTokens = 500
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = 0.7
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "sqlite"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Style == "" {
		cfg.Logging.Style = "pretty"
	}
}

// applyEnvOverrides reads CONVOSCORE_* environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONVOSCORE_JUDGE_API_KEY"); v != "" {
		cfg.Judge.APIKey = v
	}
	if v := os.Getenv("CONVOSCORE_JUDGE_ENDPOINT"); v != "" {
		cfg.Judge.Endpoint = v
	}
	if v := os.Getenv("CONVOSCORE_RETRIEVAL_API_KEY"); v != "" {
		cfg.Retrieval.APIKey = v
	}
	if v := os.Getenv("CONVOSCORE_RETRIEVAL_ENDPOINT"); v != "" {
		cfg.Retrieval.Endpoint = v
	}
	if v := os.Getenv("CONVOSCORE_RETRIEVAL_TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			cfg.Retrieval.TopK = k
		}
	}
	if v := os.Getenv("CONVOSCORE_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("CONVOSCORE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}
