// Package enrichment implements the optional enrichment step that may
// override sentiment, clarity and confidence and contribute suggestions and a
// tone before scoring. Providers are constructed with their credentials; the
// caller decides what to do when one fails.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"interview-coach-go/internal/types"
)

var (
	// ErrNoCredentials is returned when a provider needs an API key and none was configured.
	ErrNoCredentials = errors.New("enrichment: no credentials configured")
	// ErrNoJSON is returned when a provider response holds no JSON object.
	ErrNoJSON = errors.New("enrichment: no JSON object in response")
)

// Enricher produces overrides for a cleaned transcript.
type Enricher interface {
	Enrich(ctx context.Context, text string) (*types.Enrichment, error)
	Name() string
}

// MetricsEnricher is implemented by providers that work from the extracted
// metrics instead of the text alone. The processor prefers EnrichMetrics
// when a provider offers it.
type MetricsEnricher interface {
	Enricher
	EnrichMetrics(ctx context.Context, m types.TranscriptMetrics) (*types.Enrichment, error)
}

// Provider names accepted by New.
const (
	ProviderNone    = "none"
	ProviderOpenAI  = "openai"
	ProviderLexicon = "lexicon"
	ProviderMock    = "mock"
)

// Config selects and configures a provider.
type Config struct {
	Provider  string        `yaml:"provider"`
	APIKey    string        `yaml:"-"`
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"-"`
}

// New builds the configured provider. It returns a nil Enricher and nil error
// for the "none" provider.
func New(cfg Config) (Enricher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderOpenAI:
		p, err := NewOpenAI(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderLexicon:
		return Lexicon{}, nil
	case ProviderMock:
		return NewStatic(), nil
	default:
		return nil, fmt.Errorf("enrichment: unknown provider %q", cfg.Provider)
	}
}
