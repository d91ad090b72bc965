package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func geminiServer(t *testing.T, text string) (server *httptest.Server) {
	t.Helper()

	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		if !strings.HasSuffix(r.URL.Path, "/models/"+GeminiModel+":generateContent") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		if r.Header.Get("X-Goog-Api-Key") != "test-key" {
			t.Error("Missing or incorrect API key header")
		}

		var req GeminiRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("Expected a single user part, got %+v", req.Contents)
		}

		resp := GeminiResponse{
			Candidates: []GeminiCandidate{
				{
					Content:      GeminiContent{Role: "model", Parts: []GeminiPart{{Text: text}}},
					FinishReason: "STOP",
				},
			},
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}))

	return server
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "")

	if client.provider != ProviderGemini {
		t.Errorf("Expected provider '%s', got '%s'", ProviderGemini, client.provider)
	}

	if client.model != GeminiModel {
		t.Errorf("Expected model '%s', got '%s'", GeminiModel, client.model)
	}

	if client.endpoint != GeminiAPIEndpoint {
		t.Errorf("Expected endpoint '%s', got '%s'", GeminiAPIEndpoint, client.endpoint)
	}

	if client.httpClient.Timeout != 120*time.Second {
		t.Errorf("Expected timeout 120s, got %v", client.httpClient.Timeout)
	}
}

func TestNewProviderClient(t *testing.T) {
	client := NewProviderClient(ProviderAnthropic, "k", "")
	if client.Model() != ClaudeModel || client.endpoint != ClaudeAPIEndpoint {
		t.Errorf("Unexpected anthropic defaults: %s %s", client.Model(), client.endpoint)
	}

	client = NewProviderClient("unknown", "k", "custom")
	if client.Provider() != ProviderGemini || client.Model() != "custom" {
		t.Errorf("Expected gemini fallback with custom model, got %s %s", client.Provider(), client.Model())
	}
}

func TestGenerateContent(t *testing.T) {
	server := geminiServer(t, "Build resumes faster.")
	defer server.Close()

	client := NewClient("test-key", "")
	client.endpoint = server.URL

	text, err := client.GenerateContent(context.Background(), "Write a headline")
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}

	if text != "Build resumes faster." {
		t.Errorf("Unexpected text '%s'", text)
	}
}

func TestSuggestSummaryStripsFences(t *testing.T) {
	server := geminiServer(t, "```\nSeasoned engineer.\n```")
	defer server.Close()

	client := NewClient("test-key", "")
	client.endpoint = server.URL

	summary, err := client.SuggestSummary(context.Background(), SummaryRequest{Name: "Ada", Role: "Engineer"})
	if err != nil {
		t.Fatalf("SuggestSummary failed: %v", err)
	}

	if summary != "Seasoned engineer." {
		t.Errorf("Unexpected summary '%s'", summary)
	}
}

func TestImproveDescription(t *testing.T) {
	server := geminiServer(t, "  Led the platform team.  ")
	defer server.Close()

	client := NewClient("test-key", "")
	client.endpoint = server.URL

	description, err := client.ImproveDescription(context.Background(), DescriptionRequest{Title: "Lead", Description: "did platform"})
	if err != nil {
		t.Fatalf("ImproveDescription failed: %v", err)
	}

	if description != "Led the platform team." {
		t.Errorf("Unexpected description '%s'", description)
	}
}

func TestRequestValidation(t *testing.T) {
	client := NewClient("test-key", "")
	ctx := context.Background()

	_, err := client.GenerateContent(ctx, "   ")
	if err == nil {
		t.Error("Expected error for empty prompt, got nil")
	}

	_, err = client.SuggestSummary(ctx, SummaryRequest{})
	if err == nil {
		t.Error("Expected error for empty summary request, got nil")
	}

	_, err = client.ImproveDescription(ctx, DescriptionRequest{Title: "x"})
	if err == nil {
		t.Error("Expected error for empty description, got nil")
	}
}

func TestNotConfigured(t *testing.T) {
	client := NewClient("", "")

	if client.Configured() {
		t.Error("Client without key should not be configured")
	}

	_, err := client.GenerateContent(context.Background(), "hello")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestClaudeProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "my-api-key" {
			t.Errorf("Expected API key 'my-api-key', got '%s'", r.Header.Get("X-Api-Key"))
		}

		if r.Header.Get("Anthropic-Version") != ClaudeAPIVersion {
			t.Errorf("Expected version '%s', got '%s'", ClaudeAPIVersion, r.Header.Get("Anthropic-Version"))
		}

		claudeResp := ClaudeResponse{
			Content: []Content{{Type: "text", Text: "From Claude"}},
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(claudeResp)
	}))
	defer server.Close()

	client := NewProviderClient(ProviderAnthropic, "my-api-key", "")
	client.endpoint = server.URL

	text, err := client.GenerateContent(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}

	if text != "From Claude" {
		t.Errorf("Unexpected text '%s'", text)
	}
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Invalid request"}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "")
	client.endpoint = server.URL

	_, err := client.GenerateContent(context.Background(), "hello")
	if err == nil {
		t.Fatal("Expected error for bad request, got nil")
	}

	if !strings.Contains(err.Error(), "400") {
		t.Errorf("Error should mention status code 400: %v", err)
	}
}

func TestEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(GeminiResponse{})
	}))
	defer server.Close()

	client := NewClient("test-key", "")
	client.endpoint = server.URL

	_, err := client.GenerateContent(context.Background(), "hello")
	if err == nil {
		t.Fatal("Expected error for empty content, got nil")
	}

	if !strings.Contains(err.Error(), "no content") {
		t.Errorf("Error should mention 'no content': %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient("test-key", "")
	client.endpoint = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.GenerateContent(ctx, "hello")
	if err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
}

func TestStripMarkdownCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "with json code fence",
			input:    "```json\n{\"test\": \"value\"}\n```",
			expected: "{\"test\": \"value\"}",
		},
		{
			name:     "bare fence",
			input:    "```\nplain\n```",
			expected: "plain",
		},
		{
			name:     "with extra whitespace",
			input:    "\n```text\nline one\nline two\n\n```\n",
			expected: "line one\nline two",
		},
		{
			name:     "plain text",
			input:    "This is plain text",
			expected: "This is plain text",
		},
		{
			name:     "inline fence left alone",
			input:    "```code```",
			expected: "```code```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripMarkdownCodeFences(tt.input)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}
