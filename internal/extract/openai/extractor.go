package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"telextract/internal/config"
	"telextract/internal/domain"
	"telextract/internal/extract"
	"telextract/internal/port"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

func init() {
	extract.RegisterProvider("openai", func(cfg *config.AIConfig) (port.FieldExtractor, error) {
		return NewExtractor(cfg), nil
	})
}

// Extractor implements port.FieldExtractor using the OpenAI Chat
// Completions API. It makes exactly one call per document; retry policy
// belongs to the caller.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewExtractor creates an OpenAI-based field extractor from an AI config.
func NewExtractor(cfg *config.AIConfig) *Extractor {
	return newExtractor(cfg, apiURL)
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API
// endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.AIConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.AIConfig, endpoint string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Extractor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	if e.apiKey == "" {
		return nil, &domain.AIServiceError{Provider: "openai", Err: errors.New("missing API key")}
	}

	reqBody := map[string]interface{}{
		"model": e.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": extract.SystemPrompt},
			{"role": "user", "content": extract.BuildUserPrompt(input.Text, input.Template)},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
		// Low temperature keeps extraction variance down.
		"temperature": 0.1,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &domain.AIServiceError{Provider: "openai", Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, &domain.AIServiceError{Provider: "openai", Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &domain.AIServiceError{Provider: "openai", Err: fmt.Errorf("calling openai API: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.AIServiceError{Provider: "openai", Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.AIServiceError{
			Provider: "openai",
			Err:      fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500)),
		}
	}

	fields, err := parseResponse(respBody, input.Template)
	if err != nil {
		return nil, &domain.AIServiceError{Provider: "openai", Err: err}
	}

	return &port.ExtractOutput{Fields: fields, Model: e.model}, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, tmpl *domain.Template) (domain.FieldMap, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	text := resp.Choices[0].Message.Content

	if err := validateResponse([]byte(text)); err != nil {
		return nil, fmt.Errorf("LLM JSON output failed schema validation: %w (raw: %s)", err, truncate(text, 500))
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	// Totality over the known vocabulary: the model is told to emit every
	// key, but a missing one must still surface as an explicit nil.
	fields := make(domain.FieldMap, len(raw))
	for k, v := range raw {
		fields[k] = v
	}
	for _, k := range extract.Keys() {
		if _, ok := fields[k]; !ok {
			fields[k] = nil
		}
	}
	if tmpl != nil {
		for name := range tmpl.FieldMappings {
			if _, ok := fields[name]; !ok {
				fields[name] = nil
			}
		}
	}

	return fields, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
