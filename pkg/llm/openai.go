package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"
)

const (
	// OpenAIModel is the default chat model.
	OpenAIModel = "gpt-4o"
	// SystemPrompt frames every chat completion.
	SystemPrompt = "You are a helpful resume-optimizing assistant."
	// Temperature used for tailoring requests.
	Temperature = 0.7
	// OpenAIMaxTokens caps the chat completion length.
	OpenAIMaxTokens = 1500
)

// OpenAIClient completes prompts with the OpenAI chat completions API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a chat completions client. Extra options such as a base URL are passed through.
func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) (client *OpenAIClient) {
	if model == "" {
		model = OpenAIModel
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client = &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
	return client
}

// Complete sends the system framing and prompt and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (text string, err error) {
	var resp *openai.ChatCompletion
	resp, err = c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(OpenAIMaxTokens),
	})
	if err != nil {
		err = errors.Wrap(err, "chat completion request failed")
		return text, err
	}

	if len(resp.Choices) == 0 {
		err = errors.New("no choices in chat completion response")
		return text, err
	}

	text = resp.Choices[0].Message.Content
	return text, err
}
