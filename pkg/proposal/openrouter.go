package proposal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel    = "google/gemini-2.0-flash-001"
	defaultTimeout  = 60 * time.Second
)

const systemPrompt = `You extract fillable form structure from an image or PDF of a paper form.
Reply with a single JSON object: {"title": string, "description": string, "fields": [{"label": string, "type": string, "placeholder": string, "required": bool, "options": [string]}]}.
Allowed types: text, textarea, number, date, email, phone, checkbox, select, signature.
Use "options" only for select and checkbox. Do not invent fields that are not on the form.`

// OpenRouter calls a vision model through the OpenRouter chat completions
// API and normalizes its reply into a Proposal.
type OpenRouter struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// OpenRouterOption configures the adapter.
type OpenRouterOption func(*OpenRouter)

// WithModel overrides the default vision model slug.
func WithModel(model string) OpenRouterOption {
	return func(o *OpenRouter) { o.model = model }
}

// WithEndpoint overrides the API endpoint, mainly for tests.
func WithEndpoint(endpoint string) OpenRouterOption {
	return func(o *OpenRouter) { o.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) OpenRouterOption {
	return func(o *OpenRouter) { o.client = client }
}

// WithLogger replaces the default no-op logger.
func WithLogger(logger zerolog.Logger) OpenRouterOption {
	return func(o *OpenRouter) { o.logger = logger }
}

// NewOpenRouter builds the adapter.
func NewOpenRouter(apiKey string, opts ...OpenRouterOption) *OpenRouter {
	o := &OpenRouter{
		apiKey:   apiKey,
		model:    defaultModel,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenRouter) Propose(ctx context.Context, fileURL, mimeType string) (Proposal, error) {
	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: fmt.Sprintf("Extract the form structure from this %s document.", mimeType)},
				{Type: "image_url", ImageURL: &imageURL{URL: fileURL}},
			}},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return Proposal{}, &SchemaProposalError{Stage: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return Proposal{}, &SchemaProposalError{Stage: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return Proposal{}, &SchemaProposalError{Stage: "call model", Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Proposal{}, &SchemaProposalError{Stage: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return Proposal{}, &SchemaProposalError{
			Stage: "call model",
			Err:   fmt.Errorf("status %d: %s", resp.StatusCode, payload),
		}
	}

	var chat chatResponse
	if err := json.Unmarshal(payload, &chat); err != nil {
		return Proposal{}, &SchemaProposalError{Stage: "decode response", Err: err}
	}
	if len(chat.Choices) == 0 {
		return Proposal{}, &SchemaProposalError{Stage: "decode response", Err: fmt.Errorf("no choices returned")}
	}

	var raw rawProposal
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &raw); err != nil {
		return Proposal{}, &SchemaProposalError{Stage: "parse proposal", Err: err}
	}

	proposal, err := normalize(raw)
	if err != nil {
		return Proposal{}, err
	}
	o.logger.Debug().Int("fields", len(proposal.Fields)).Str("title", proposal.Title).
		Msg("schema proposal accepted")
	return proposal, nil
}
