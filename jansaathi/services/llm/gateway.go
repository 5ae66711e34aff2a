// jansaathi/services/llm/gateway.go
package llm

import (
	"context"
	"io"
	"net/http"
	"time"

	"jansaathi/jansaathi/config"
	httputils "jansaathi/jansaathi/utils/http"
	"jansaathi/jansaathi/utils/logging"
	"jansaathi/jansaathi/utils/types"

	"go.uber.org/zap"
)

// StreamError is the local error taxonomy for a failed relay attempt. The
// message is safe to show to users; upstream error text never is.
type StreamError struct {
	Status  int
	Message string
}

func (e *StreamError) Error() string { return e.Message }

// MapUpstreamStatus translates a non-success upstream status into the
// stable local taxonomy.
func MapUpstreamStatus(status int) *StreamError {
	switch status {
	case http.StatusTooManyRequests:
		return &StreamError{Status: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again in a moment."}
	case http.StatusPaymentRequired:
		return &StreamError{Status: http.StatusPaymentRequired, Message: "Service temporarily unavailable. Please try again later."}
	default:
		return &StreamError{Status: http.StatusInternalServerError, Message: "AI service error. Please try again."}
	}
}

// GatewayClient talks to the hosted chat-completion endpoint.
type GatewayClient struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGatewayClient(cfg config.Config) *GatewayClient {
	return &GatewayClient{
		url:    cfg.AIGatewayURL,
		apiKey: cfg.AIGatewayKey,
		model:  cfg.AIModel,
		httpClient: &http.Client{
			// Covers the whole stream, not just the headers.
			Timeout: 300 * time.Second,
		},
	}
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []types.ChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

// CreateStream sends one streaming completion request combining the system
// message with the validated conversation. On success the raw SSE body is
// returned untouched; the caller relays or decodes it and must close it.
// Upstream failures come back as *StreamError.
func (c *GatewayClient) CreateStream(ctx context.Context, systemPrompt string, messages []types.ChatMessage) (*http.Response, error) {
	defer logging.LogDuration(ctx, "gateway_create_stream")()

	body := completionRequest{
		Model:    c.model,
		Messages: append([]types.ChatMessage{{Role: types.RoleSystem, Content: systemPrompt}}, messages...),
		Stream:   true,
	}

	resp, err := httputils.PostStreamWithAuth(ctx, c.httpClient, c.url, c.apiKey, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		// Log the upstream detail, surface only the mapped taxonomy.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		if logging.ErrorLogger != nil {
			logging.ErrorLogger.Error("ai gateway error",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", detail),
			)
		}
		return nil, MapUpstreamStatus(resp.StatusCode)
	}
	return resp, nil
}
