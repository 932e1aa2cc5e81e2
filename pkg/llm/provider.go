package llm

import (
	"context"

	"github.com/pkg/errors"
)

// Completer turns a prompt into model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (text string, err error)
}

// NewCompleter returns the client for provider ("anthropic" or "openai").
func NewCompleter(provider, apiKey, model string) (completer Completer, err error) {
	if apiKey == "" {
		err = errors.Errorf("no API key for provider %q", provider)
		return completer, err
	}

	switch provider {
	case "", "anthropic":
		completer = NewClient(apiKey, model)
	case "openai":
		completer = NewOpenAIClient(apiKey, model)
	default:
		err = errors.Errorf("unknown provider %q", provider)
	}

	return completer, err
}
