package llm

// SummaryRequest asks for a professional summary for a resume or portfolio.
type SummaryRequest struct {
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Experience     []string `json:"experience,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	JobDescription string   `json:"job_description,omitempty"`
}

// DescriptionRequest asks for an improved position or project description.
type DescriptionRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description"`
	Context     string `json:"context,omitempty"`
}

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	Contents         []GeminiContent  `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// GenerationConfig bounds the model output.
type GenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

// GeminiContent is one turn of a Gemini conversation.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is a text part of a turn.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiResponse is the generateContent response body.
type GeminiResponse struct {
	Candidates    []GeminiCandidate `json:"candidates"`
	UsageMetadata GeminiUsage       `json:"usageMetadata"`
}

// GeminiCandidate is one generated answer.
type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

// GeminiUsage reports token counts.
type GeminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
}

// ClaudeRequest is the Messages API request body.
type ClaudeRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// ClaudeResponse is the Messages API response body.
type ClaudeResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Role    string    `json:"role"`
	Content []Content `json:"content"`
	Model   string    `json:"model"`
}

// Message is a message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Content is a content block in a Messages API response.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
