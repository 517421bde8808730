// Package classify routes free-text claims to departments. A Provider
// turns text into one of a fixed set of category labels; the Router
// maps the label to a department and degrades to the central-authority
// department whenever the provider is unavailable, fails, or produces
// an unmapped label.
package classify

import (
	"context"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// Category labels a provider may produce. The label table below maps
// them to department internal names (the seed data set).
const (
	LabelInformatics      = "soporte informático"
	LabelCentralSecretary = "secretaría técnica"
	LabelMaintenance      = "maestranza"
)

// Labels returns every known category label.
func Labels() []string {
	return []string{LabelInformatics, LabelCentralSecretary, LabelMaintenance}
}

// labelTable maps category labels to department internal names.
var labelTable = map[string]string{
	LabelInformatics:      "secretario_informatico",
	LabelCentralSecretary: "secretario_tecnico",
	LabelMaintenance:      "maestranza",
}

// DepartmentNameForLabel resolves a category label to the department
// internal name, reporting whether the label is mapped.
func DepartmentNameForLabel(label string) (string, bool) {
	name, ok := labelTable[label]
	return name, ok
}

// Provider defines the interface for text classifiers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Classify maps free text to one of the known category labels.
	Classify(ctx context.Context, text string) (string, error)

	// IsAvailable checks if the provider is properly configured and
	// accessible.
	IsAvailable(ctx context.Context) bool
}

// Config holds classifier provider configuration.
type Config struct {
	// Provider name: "keyword", "openai", "ollama", "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for remote providers.
	APIKey string

	// BaseURL for custom endpoints.
	BaseURL string

	// Timeout for provider calls, in seconds.
	Timeout int
}

// ConfigFromModel converts the application classifier configuration.
func ConfigFromModel(cfg model.ClassifierConfig) Config {
	return Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
	}
}
