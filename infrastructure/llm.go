package infrastructure

//go:generate mockgen -destination=mocks/mock_completer.go -package=mocks resume-screener/infrastructure Completer

import (
	"context"
	"fmt"
	"net/http"

	"resume-screener/domain"
)

// Completer sends a single prompt to a hosted model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderError carries the HTTP status a provider answered with, so the
// analyzer can tell credential, quota and timeout failures apart.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama-3.1-8b-instant"
	openAIModel      = "gpt-4o-mini"
	geminiModel      = "gemini-2.0-flash"
	vertexModel      = "gemini-2.0-flash-001"
)

// NewCompleter builds the client for cfg.LLMProvider. It returns
// domain.ErrLLMCredentialMissing when the provider has no credential.
func NewCompleter(ctx context.Context, cfg *Config) (Completer, error) {
	httpClient := &http.Client{Timeout: cfg.LLMTimeout}

	switch cfg.LLMProvider {
	case "groq", "":
		if cfg.LLMAPIKey == "" {
			return nil, domain.ErrLLMCredentialMissing
		}
		baseURL := firstNonEmpty(cfg.LLMBaseURL, groqBaseURL)
		model := firstNonEmpty(cfg.LLMModel, groqDefaultModel)
		return NewOpenAICompleter("groq", cfg.LLMAPIKey, baseURL, model, cfg.LLMTemperature, httpClient), nil
	case "openai":
		if cfg.LLMAPIKey == "" {
			return nil, domain.ErrLLMCredentialMissing
		}
		model := firstNonEmpty(cfg.LLMModel, openAIModel)
		return NewOpenAICompleter("openai", cfg.LLMAPIKey, cfg.LLMBaseURL, model, cfg.LLMTemperature, httpClient), nil
	case "gemini":
		if cfg.LLMAPIKey == "" {
			return nil, domain.ErrLLMCredentialMissing
		}
		model := firstNonEmpty(cfg.LLMModel, geminiModel)
		c, err := NewGeminiCompleter(ctx, cfg.LLMAPIKey, model, cfg.LLMTemperature, httpClient)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "vertexai", "vertex":
		if cfg.VertexProject == "" {
			return nil, domain.ErrLLMCredentialMissing
		}
		model := firstNonEmpty(cfg.LLMModel, vertexModel)
		c, err := NewVertexCompleter(ctx, cfg.VertexProject, cfg.VertexLocation, model, cfg.LLMTemperature, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
