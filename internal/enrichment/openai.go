package enrichment

import (
	"context"
	"fmt"
	"net/http"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"interview-coach-go/internal/types"
)

const (
	defaultModel     = "gpt-3.5-turbo"
	defaultMaxTokens = 300
)

// OpenAI asks a chat-completions model for enrichment overrides.
type OpenAI struct {
	client    oai.Client
	model     string
	maxTokens int
}

// NewOpenAI builds the provider from cfg. cfg.APIKey is required. Requests
// are made once; the SDK's own retries are disabled.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoCredentials
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.Timeout,
		}))
	}

	return &OpenAI{
		client:    oai.NewClient(reqOpts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Name implements Enricher.
func (p *OpenAI) Name() string { return ProviderOpenAI }

// Enrich implements Enricher.
func (p *OpenAI) Enrich(ctx context.Context, text string) (*types.Enrichment, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.UserMessage(BuildPrompt(text)),
		},
		MaxTokens: param.NewOpt(int64(p.maxTokens)),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices in response")
	}
	return ParseEnrichment(resp.Choices[0].Message.Content)
}
