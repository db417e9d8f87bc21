package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telextract/internal/config"
	"telextract/internal/domain"
	"telextract/internal/extract/openai"
	"telextract/internal/port"
)

func testConfig() *config.AIConfig {
	return &config.AIConfig{APIKey: "test-key", DefaultModel: "gpt-4o", TimeoutSecs: 5}
}

// chatCompletion wraps content in the Chat Completions response envelope.
func chatCompletion(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{
				"message":       map[string]any{"content": content},
				"finish_reason": "stop",
			},
		},
	})
	return string(body)
}

func TestExtract_Success(t *testing.T) {
	var gotAuth string
	var gotReq map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, chatCompletion(`{"invoiceNumber":"INV-2024-001","totalPayable":45678.50,"reverseCharge":false,"billDate":"15.03.24"}`))
	}))
	defer server.Close()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{Text: "Invoice No: INV-2024-001"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o", gotReq["model"])
	assert.Equal(t, 0.1, gotReq["temperature"])
	rf, _ := gotReq["response_format"].(map[string]any)
	assert.Equal(t, "json_object", rf["type"])

	assert.Equal(t, "gpt-4o", out.Model)
	assert.Equal(t, "INV-2024-001", out.Fields["invoiceNumber"])
	assert.Equal(t, 45678.50, out.Fields["totalPayable"])
	assert.Equal(t, false, out.Fields["reverseCharge"])
	// Dates come back raw; normalization happens downstream.
	assert.Equal(t, "15.03.24", out.Fields["billDate"])
}

func TestExtract_FillsMissingKeysWithNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatCompletion(`{"invoiceNumber":"INV-1"}`))
	}))
	defer server.Close()

	tmpl := &domain.Template{
		Name: "t",
		FieldMappings: map[string]domain.FieldRule{
			"customField": {Pattern: `Custom[:.]?\s*(\S+)`},
		},
	}

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{Text: "x", Template: tmpl})
	require.NoError(t, err)

	v, ok := out.Fields["gstin"]
	assert.True(t, ok, "library keys must be present even when the model omits them")
	assert.Nil(t, v)

	v, ok = out.Fields["customField"]
	assert.True(t, ok, "template keys must be present even when the model omits them")
	assert.Nil(t, v)
}

func TestExtract_MissingAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	e := openai.NewExtractorWithEndpoint(cfg, "http://unused")

	_, err := e.Extract(context.Background(), port.ExtractInput{Text: "x"})

	var aiErr *domain.AIServiceError
	require.True(t, errors.As(err, &aiErr))
	assert.Equal(t, "openai", aiErr.Provider)
	assert.Contains(t, aiErr.Error(), "missing API key")
}

func TestExtract_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limit exceeded"}}`)
	}))
	defer server.Close()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{Text: "x"})

	var aiErr *domain.AIServiceError
	require.True(t, errors.As(err, &aiErr))
	assert.Contains(t, aiErr.Error(), "status 429")
	assert.Contains(t, aiErr.Error(), "rate limit exceeded")
}

func TestExtract_MalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": not json`)
	}))
	defer server.Close()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{Text: "x"})

	var aiErr *domain.AIServiceError
	require.True(t, errors.As(err, &aiErr))
}

func TestExtract_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{Text: "x"})

	var aiErr *domain.AIServiceError
	require.True(t, errors.As(err, &aiErr))
	assert.Contains(t, aiErr.Error(), "no choices")
}

func TestExtract_TruncatedOutput(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{
				"message":       map[string]any{"content": `{"invoiceNumber":"INV`},
				"finish_reason": "length",
			},
		},
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{Text: "x"})

	var aiErr *domain.AIServiceError
	require.True(t, errors.As(err, &aiErr))
	assert.Contains(t, aiErr.Error(), "finish_reason: length")
}

func TestExtract_SchemaViolation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"array instead of object", `[1,2,3]`},
		{"nested object value", `{"invoiceNumber":{"value":"INV-1"}}`},
		{"not JSON at all", `Here is the extracted data: invoice INV-1`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, chatCompletion(tc.content))
			}))
			defer server.Close()

			e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
			_, err := e.Extract(context.Background(), port.ExtractInput{Text: "x"})

			var aiErr *domain.AIServiceError
			require.True(t, errors.As(err, &aiErr))
		})
	}
}

func TestExtract_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := e.Extract(ctx, port.ExtractInput{Text: "x"})

	var aiErr *domain.AIServiceError
	require.True(t, errors.As(err, &aiErr))
}
