package foundry

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/claimsight/claimsight/internal/core/domain"
	"github.com/claimsight/claimsight/internal/infrastructure/resilience"
)

// Client talks to an Azure OpenAI-compatible chat completions endpoint.
// Calls are single-shot by default; retries only happen when the caller
// installs an executor configured for them.
type Client struct {
	endpoint   string
	apiKey     string
	apiVersion string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(endpoint, apiKey, apiVersion string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   resilience.NewExecutor(resilience.SingleShotConfig()),
	}
}

func (c *Client) WithExecutor(executor *resilience.Executor) *Client {
	if executor != nil {
		c.executor = executor
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

func (c *Client) chat(ctx context.Context, deployment, operation string, req chatRequest) (string, error) {
	path := fmt.Sprintf("/openai/deployments/%s/chat/completions?api-version=%s", deployment, c.apiVersion)

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, path, req, &response, operation)
	}
	err := c.executor.Execute(ctx, operation, call, classifyFoundryError)
	if err != nil {
		return "", wrapTemporaryIfNeeded(operation, err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s: empty choices in model response", operation)
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// Recognizer extracts text from statement images via a vision deployment.
type Recognizer struct {
	client     *Client
	deployment string
}

func NewRecognizer(client *Client, deployment string) *Recognizer {
	return &Recognizer{client: client, deployment: deployment}
}

func (r *Recognizer) RecognizeImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)

	text, err := r.client.chat(ctx, r.deployment, "ocr", chatRequest{
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: extractionPrompt},
				{Type: "image_url", ImageURL: &imageRef{URL: dataURL}},
			},
		}},
		MaxTokens: 2000,
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// Structurer converts OCR text into a claim record via a chat deployment.
type Structurer struct {
	client     *Client
	deployment string
}

func NewStructurer(client *Client, deployment string) *Structurer {
	return &Structurer{client: client, deployment: deployment}
}

func (s *Structurer) Structure(ctx context.Context, text string, hint domain.DocumentType) (*domain.ClaimRecord, string, error) {
	temperature := 0.1
	raw, err := s.client.chat(ctx, s.deployment, "structure", chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: structuringInstructions},
			{Role: "user", Content: buildStructuringQuery(text, hint)},
		},
		Temperature:    &temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, "", err
	}

	var record domain.ClaimRecord
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &record); err != nil {
		return nil, raw, domain.WrapError(domain.ErrUnparsableResponse, "parse claim record", err)
	}
	record.Normalize()
	return &record, raw, nil
}

// Evaluator assesses coverage and liability for a structured record.
type Evaluator struct {
	client     *Client
	deployment string
}

func NewEvaluator(client *Client, deployment string) *Evaluator {
	return &Evaluator{client: client, deployment: deployment}
}

func (e *Evaluator) Evaluate(ctx context.Context, record *domain.ClaimRecord, policies []domain.PolicyDocument) (*domain.PolicyEvaluation, string, error) {
	claimJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal claim record: %w", err)
	}

	temperature := 0.1
	raw, err := e.client.chat(ctx, e.deployment, "evaluate", chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: policyEvaluationInstructions},
			{Role: "user", Content: buildPolicyQuery(string(claimJSON), policies)},
		},
		Temperature:    &temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, "", err
	}

	var eval domain.PolicyEvaluation
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &eval); err != nil {
		return nil, raw, domain.WrapError(domain.ErrUnparsableResponse, "parse policy evaluation", err)
	}
	return &eval, raw, nil
}

// extractJSONObject slices out the outermost JSON object, stripping any
// markdown fences the model wrapped around it.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
