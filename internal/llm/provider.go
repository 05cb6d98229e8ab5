package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/pr-review-agent/internal/config"
)

// Completer sends a single text prompt to a language model and returns its answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewModel creates the generator model selected by cfg.AI.Provider.
func NewModel(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llms.Model, error) {
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		logger.Info("using Gemini LLM provider", "model", cfg.AI.GeneratorModel)
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		return gemini.New(ctx,
			gemini.WithModel(cfg.AI.GeneratorModel),
			gemini.WithAPIKey(cfg.AI.GeminiAPIKey),
		)
	case config.ProviderOllama:
		logger.Info("using Ollama LLM provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		return ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.Provider)
	}
}

// newOllamaHTTPClient uses generous timeouts; local models can be slow to answer.
func newOllamaHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}

type modelCompleter struct {
	model   llms.Model
	timeout time.Duration
}

// NewCompleter adapts a goframe model to Completer. A positive timeout bounds each call.
func NewCompleter(model llms.Model, timeout time.Duration) Completer {
	return &modelCompleter{model: model, timeout: timeout}
}

func (c *modelCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
}
