package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/SolBenven/proyecto-final-prog-av/internal/textutil"
)

// OpenAIProvider implements the Provider interface using OpenAI chat
// completions. The prompt constrains the answer to the known labels;
// anything else is treated as a classification failure so the router
// can fall back.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Classify asks the model to pick exactly one category label for the
// claim text.
func (p *OpenAIProvider) Classify(ctx context.Context, text string) (string, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := buildPrompt(text)
	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Eres un clasificador de reclamos. Respondes únicamente con la categoría pedida, sin explicaciones.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   20,
		Temperature: 0, // Deterministic label selection
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	label, ok := matchLabel(answer)
	if !ok {
		return "", fmt.Errorf("unrecognized category %q", answer)
	}
	return label, nil
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`Clasifica el siguiente reclamo en exactamente una de estas categorías:
- %s
- %s
- %s

Reclamo: %q

Responde solo con el nombre de la categoría.`, LabelInformatics, LabelCentralSecretary, LabelMaintenance, text)
}

// matchLabel compares the model's answer against the known labels,
// ignoring case, accents and surrounding punctuation.
func matchLabel(answer string) (string, bool) {
	normalized := strings.Trim(textutil.Normalize(answer), ` ."'`)
	for _, label := range Labels() {
		if normalized == textutil.Normalize(label) {
			return label, true
		}
	}
	return "", false
}
