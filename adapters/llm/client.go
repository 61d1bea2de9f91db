package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"govista/internal/config"
)

// StructuredClient provides typed JSON responses from LLM calls
type StructuredClient[T any] struct {
	OpenAIClient  *OpenAIClient
	SystemContext string
}

// OpenAIClient holds connection settings for the hosted model
type OpenAIClient struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	Model       string
}

// ResponseFormat forces structured output from GPT models
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" for structured output
}

// NewStructuredClient creates a new structured client
func NewStructuredClient[T any](cfg *config.AIConfig) *StructuredClient[T] {
	log.Printf("[StructuredClient] Initializing client with model=%s, temp=%.2f, maxTokens=%d",
		cfg.Model, cfg.Temperature, cfg.MaxTokens)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &StructuredClient[T]{
		OpenAIClient: &OpenAIClient{
			APIKey:      cfg.APIKey,
			BaseURL:     baseURL,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Model:       cfg.Model,
		},
		SystemContext: cfg.SystemContext,
	}
}

// GetJSONResponse makes a typed LLM call and parses the JSON response
func (client *StructuredClient[T]) GetJSONResponse(ctx context.Context, prompt string, systemMessage string) (*T, error) {
	log.Printf("[StructuredClient] Starting JSON response request - model=%s", client.OpenAIClient.Model)

	timeout := client.OpenAIClient.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	type RequestBody struct {
		Model               string         `json:"model"`
		Messages            []Message      `json:"messages"`
		Temperature         float64        `json:"temperature,omitempty"`
		MaxCompletionTokens int            `json:"max_completion_tokens,omitempty"`
		ResponseFormat      ResponseFormat `json:"response_format,omitempty"`
	}

	systemContent := systemMessage
	if systemContent == "" {
		systemContent = client.SystemContext
	}
	// OpenAI JSON mode requires the word JSON in the conversation
	if !strings.Contains(strings.ToLower(systemContent), "json") {
		systemContent = systemContent + "\n\nIMPORTANT: Respond with valid JSON output."
	}

	reqBody := RequestBody{
		Model: client.OpenAIClient.Model,
		Messages: []Message{
			{Role: "system", Content: systemContent},
			{Role: "user", Content: prompt},
		},
		Temperature:         client.OpenAIClient.Temperature,
		MaxCompletionTokens: client.OpenAIClient.MaxTokens,
		ResponseFormat:      ResponseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	log.Printf("[StructuredClient] Sending request to %s - promptLength=%d", client.OpenAIClient.Model, len(prompt))

	req, err := http.NewRequestWithContext(ctx, "POST", client.OpenAIClient.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+client.OpenAIClient.APIKey)

	httpClient := &http.Client{Timeout: timeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("request timeout after %v: %w", timeout, err)
		}
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	type OpenAIResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	var openaiResp OpenAIResponse
	if err := json.Unmarshal(body, &openaiResp); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}
	if len(openaiResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenAI response")
	}

	content := cleanJSONContent(openaiResp.Choices[0].Message.Content)

	var result T
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		log.Printf("[StructuredClient] ERROR: Failed to unmarshal JSON content into result type: %v", err)
		return nil, fmt.Errorf("failed to parse JSON content into result type: %w", err)
	}

	log.Printf("[StructuredClient] Parsed JSON response into result type")
	return &result, nil
}

// cleanJSONContent removes markdown code blocks and chatter that
// models sometimes wrap around their JSON output
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Trim prefix chatter before a JSON object or array
	if !strings.HasPrefix(content, "{") && strings.Contains(content, "\n{") {
		parts := strings.SplitN(content, "\n{", 2)
		if !strings.Contains(parts[0], "{") && !strings.Contains(parts[0], "[") {
			content = "{" + parts[1]
		}
	} else if !strings.HasPrefix(content, "[") && strings.Contains(content, "\n[") {
		parts := strings.SplitN(content, "\n[", 2)
		if !strings.Contains(parts[0], "{") && !strings.Contains(parts[0], "[") {
			content = "[" + parts[1]
		}
	}

	return strings.TrimSpace(content)
}
