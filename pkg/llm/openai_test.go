package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
)

func TestOpenAIComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("Unexpected authorization header %q", r.Header.Get("Authorization"))
		}

		var body map[string]any
		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		if body["model"] != "gpt-test" {
			t.Errorf("Expected model gpt-test, got %v", body["model"])
		}

		if body["temperature"] != Temperature {
			t.Errorf("Expected temperature %v, got %v", Temperature, body["temperature"])
		}

		messages, _ := body["messages"].([]any)
		if len(messages) != 2 {
			t.Fatalf("Expected system and user messages, got %d", len(messages))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-test",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "section,subsection,content\nDear team,"}
			}]
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("sk-test", "gpt-test", option.WithBaseURL(server.URL+"/"), option.WithMaxRetries(0))

	text, err := client.Complete(context.Background(), "tailor this")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if text != "section,subsection,content\nDear team," {
		t.Errorf("Unexpected reply %q", text)
	}
}

func TestOpenAINoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-test","choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("sk-test", "", option.WithBaseURL(server.URL+"/"), option.WithMaxRetries(0))

	_, err := client.Complete(context.Background(), "q")
	if err == nil {
		t.Error("Expected error for empty choices, got nil")
	}
}

func TestOpenAIAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("sk-bad", "", option.WithBaseURL(server.URL+"/"), option.WithMaxRetries(0))

	_, err := client.Complete(context.Background(), "q")
	if err == nil {
		t.Error("Expected error for unauthorized request, got nil")
	}
}

func TestNewCompleter(t *testing.T) {
	tests := []struct {
		name      string
		provider  string
		apiKey    string
		wantType  string
		wantError bool
	}{
		{name: "default is anthropic", provider: "", apiKey: "k", wantType: "anthropic"},
		{name: "anthropic", provider: "anthropic", apiKey: "k", wantType: "anthropic"},
		{name: "openai", provider: "openai", apiKey: "k", wantType: "openai"},
		{name: "unknown", provider: "gemini", apiKey: "k", wantError: true},
		{name: "missing key", provider: "openai", apiKey: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer, err := NewCompleter(tt.provider, tt.apiKey, "")
			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			switch completer.(type) {
			case *Client:
				if tt.wantType != "anthropic" {
					t.Errorf("Expected %s completer, got anthropic", tt.wantType)
				}
			case *OpenAIClient:
				if tt.wantType != "openai" {
					t.Errorf("Expected %s completer, got openai", tt.wantType)
				}
			default:
				t.Errorf("Unexpected completer type %T", completer)
			}
		})
	}
}
