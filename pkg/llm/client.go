package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// ProviderGemini selects the Google Gemini generateContent API.
	ProviderGemini = "gemini"
	// ProviderAnthropic selects the Anthropic Messages API.
	ProviderAnthropic = "anthropic"

	// GeminiAPIEndpoint is the Gemini API base URL.
	GeminiAPIEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	// GeminiModel is the default Gemini model.
	GeminiModel = "gemini-2.5-pro"

	// ClaudeAPIEndpoint is the Anthropic API endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeModel is the default Anthropic model.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeAPIVersion is the Anthropic API version.
	ClaudeAPIVersion = "2023-06-01"

	maxOutputTokens = 2048
)

// ErrNotConfigured is returned when the client has no API key.
var ErrNotConfigured = errors.New("AI provider not configured (set GEMINI_API_KEY or FOLIO_AI_API_KEY)")

// Client generates text with a hosted language model.
type Client struct {
	provider   string
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a Gemini client. An empty model selects GeminiModel.
func NewClient(apiKey, model string) (client *Client) {
	client = NewProviderClient(ProviderGemini, apiKey, model)
	return client
}

// NewProviderClient creates a client for the named provider. Unknown
// providers fall back to Gemini.
func NewProviderClient(provider, apiKey, model string) (client *Client) {
	endpoint := GeminiAPIEndpoint
	defaultModel := GeminiModel

	if provider == ProviderAnthropic {
		endpoint = ClaudeAPIEndpoint
		defaultModel = ClaudeModel
	} else {
		provider = ProviderGemini
	}

	if model == "" {
		model = defaultModel
	}

	client = &Client{
		provider: provider,
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return client
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() (ok bool) {
	ok = c != nil && c.apiKey != ""
	return ok
}

// Provider returns the provider name.
func (c *Client) Provider() (provider string) {
	return c.provider
}

// Model returns the model name.
func (c *Client) Model() (model string) {
	return c.model
}

// GenerateContent sends a free-form prompt and returns the generated text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (text string, err error) {
	if strings.TrimSpace(prompt) == "" {
		err = errors.New("prompt is empty")
		return text, err
	}

	text, err = c.complete(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "content generation failed")
		return text, err
	}

	return text, err
}

// SuggestSummary drafts a professional summary.
func (c *Client) SuggestSummary(ctx context.Context, req SummaryRequest) (summary string, err error) {
	if req.Name == "" && req.Role == "" {
		err = errors.New("summary request needs a name or role")
		return summary, err
	}

	summary, err = c.complete(ctx, buildSummaryPrompt(req))
	if err != nil {
		err = errors.Wrap(err, "summary suggestion failed")
		return summary, err
	}

	return summary, err
}

// ImproveDescription rewrites a position or project description.
func (c *Client) ImproveDescription(ctx context.Context, req DescriptionRequest) (description string, err error) {
	if strings.TrimSpace(req.Description) == "" {
		err = errors.New("description is empty")
		return description, err
	}

	description, err = c.complete(ctx, buildDescriptionPrompt(req))
	if err != nil {
		err = errors.Wrap(err, "description improvement failed")
		return description, err
	}

	return description, err
}

func (c *Client) complete(ctx context.Context, prompt string) (text string, err error) {
	if !c.Configured() {
		err = ErrNotConfigured
		return text, err
	}

	switch c.provider {
	case ProviderAnthropic:
		text, err = c.sendClaudeRequest(ctx, prompt)
	default:
		text, err = c.sendGeminiRequest(ctx, prompt)
	}
	if err != nil {
		return text, err
	}

	text = strings.TrimSpace(stripMarkdownCodeFences(text))
	if text == "" {
		err = errors.New("model returned empty text")
		return text, err
	}

	return text, err
}

func (c *Client) sendGeminiRequest(ctx context.Context, prompt string) (responseText string, err error) {
	geminiReq := GeminiRequest{
		Contents: []GeminiContent{
			{
				Role:  "user",
				Parts: []GeminiPart{{Text: prompt}},
			},
		},
		GenerationConfig: GenerationConfig{MaxOutputTokens: maxOutputTokens},
	}

	url := strings.TrimSuffix(c.endpoint, "/") + "/models/" + c.model + ":generateContent"
	headers := map[string]string{
		"X-Goog-Api-Key": c.apiKey,
	}

	var respBody []byte
	respBody, err = c.post(ctx, url, headers, geminiReq)
	if err != nil {
		return responseText, err
	}

	var geminiResp GeminiResponse
	err = json.Unmarshal(respBody, &geminiResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse Gemini response: %s", string(respBody))
		return responseText, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		err = errors.New("no content in Gemini response")
		return responseText, err
	}

	var b strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	responseText = b.String()

	return responseText, err
}

func (c *Client) sendClaudeRequest(ctx context.Context, prompt string) (responseText string, err error) {
	claudeReq := ClaudeRequest{
		Model:     c.model,
		MaxTokens: maxOutputTokens,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	headers := map[string]string{
		"X-Api-Key":         c.apiKey,
		"Anthropic-Version": ClaudeAPIVersion,
	}

	var respBody []byte
	respBody, err = c.post(ctx, c.endpoint, headers, claudeReq)
	if err != nil {
		return responseText, err
	}

	var claudeResp ClaudeResponse
	err = json.Unmarshal(respBody, &claudeResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse Claude response: %s", string(respBody))
		return responseText, err
	}

	if len(claudeResp.Content) == 0 {
		err = errors.New("no content in Claude response")
		return responseText, err
	}

	responseText = claudeResp.Content[0].Text

	return responseText, err
}

func (c *Client) post(ctx context.Context, url string, headers map[string]string, body any) (respBody []byte, err error) {
	var reqBody []byte
	reqBody, err = json.Marshal(body)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return respBody, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return respBody, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return respBody, err
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return respBody, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return respBody, err
	}

	return respBody, err
}

// stripMarkdownCodeFences removes a surrounding ``` fence, with or without a language tag.
func stripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = strings.TrimSpace(text)

	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		return text
	}

	newline := strings.IndexByte(cleaned, '\n')
	if newline == -1 {
		return text
	}

	cleaned = cleaned[newline+1 : len(cleaned)-3]
	cleaned = strings.TrimRight(cleaned, " \r\n")

	return cleaned
}
