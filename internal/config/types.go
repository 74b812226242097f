package config

// Config is the root configuration for convoscore.
type Config struct {
	Judge      JudgeConfig      `yaml:"judge,omitempty"`
	Retrieval  RetrievalConfig  `yaml:"retrieval,omitempty"`
	Generation GenerationConfig `yaml:"generation,omitempty"`
	Storage    StorageConfig    `yaml:"storage,omitempty"`
	Knowledge  KnowledgeConfig  `yaml:"knowledge,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
}

// JudgeConfig configures the semantic judge service client.
type JudgeConfig struct {
	Endpoint       string  `yaml:"endpoint,omitempty"`
	APIKey         string  `yaml:"apiKey,omitempty"`
	Model          string  `yaml:"model,omitempty"`
	TimeoutSeconds int     `yaml:"timeoutSeconds,omitempty"`
	Temperature    float64 `yaml:"temperature,omitempty"`
}

// RetrievalConfig configures the vector retrieval service client.
type RetrievalConfig struct {
	Endpoint       string `yaml:"endpoint,omitempty"`
	APIKey         string `yaml:"apiKey,omitempty"`
	Index          string `yaml:"index,omitempty"`
	TopK           int    `yaml:"topK,omitempty"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
}

// GenerationConfig bounds generated responses.
type GenerationConfig struct {
	MaxTokens   int     `yaml:"maxTokens,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
}

// StorageConfig selects the satisfaction/evaluation log backend.
type StorageConfig struct {
	Backend string `yaml:"backend,omitempty"` // "sqlite" | "memory"
	Path    string `yaml:"path,omitempty"`    // sqlite file path
}

// KnowledgeConfig points at the knowledge-base article source.
type KnowledgeConfig struct {
	Path string `yaml:"path,omitempty"` // JSON articles file; empty uses built-in samples
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	Style string `yaml:"style,omitempty"` // "pretty" | "json"
}
