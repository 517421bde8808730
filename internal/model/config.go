package model

// Config holds the application configuration assembled by the CLI from
// flags, environment and the config file.
type Config struct {
	// DataDir is the directory for the embedded database.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// UploadsDir is where claim images are stored.
	UploadsDir string `yaml:"uploads_dir" mapstructure:"uploads_dir"`

	Classifier ClassifierConfig `yaml:"classifier" mapstructure:"classifier"`
	Similarity SimilarityConfig `yaml:"similarity" mapstructure:"similarity"`

	// Verbose enables diagnostic output.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// ClassifierConfig configures the text classifier provider.
type ClassifierConfig struct {
	// Provider name: "keyword", "openai", "ollama", "" (disabled).
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific).
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for remote providers.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL for custom endpoints.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout for provider calls, in seconds.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// RequestsPerSecond rate-limits remote provider calls.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Burst is the rate limiter burst size.
	Burst int `yaml:"burst" mapstructure:"burst"`
}

// SimilarityConfig configures near-duplicate detection.
type SimilarityConfig struct {
	// Threshold is the minimum cosine similarity; matches must score
	// strictly above it.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`

	// Limit caps the number of returned matches.
	Limit int `yaml:"limit" mapstructure:"limit"`

	// MaxFeatures caps the vector space vocabulary.
	MaxFeatures int `yaml:"max_features" mapstructure:"max_features"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:    "data",
		UploadsDir: "uploads/claims",
		Classifier: ClassifierConfig{
			Provider:          "keyword",
			Timeout:           30,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Similarity: SimilarityConfig{
			Threshold:   0.25,
			Limit:       5,
			MaxFeatures: 1000,
		},
	}
}
