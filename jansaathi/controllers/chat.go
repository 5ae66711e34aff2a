// jansaathi/controllers/chat.go
package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"jansaathi/jansaathi/services/catalog"
	"jansaathi/jansaathi/services/llm"
	"jansaathi/jansaathi/services/prompt"
	"jansaathi/jansaathi/services/validation"
	"jansaathi/jansaathi/utils/logging"
	"jansaathi/jansaathi/utils/types"

	"go.uber.org/zap"
)

type ChatController struct {
	validator validation.Validator
	catalog   *catalog.Builder
	gateway   *llm.GatewayClient
}

func NewChatController(catalogBuilder *catalog.Builder, gateway *llm.GatewayClient) *ChatController {
	return &ChatController{
		validator: validation.Default(),
		catalog:   catalogBuilder,
		gateway:   gateway,
	}
}

// Stream validates the conversation, grounds the system prompt in the
// scheme catalog and opens the upstream stream. The returned body is the
// raw SSE stream; the caller relays or decodes it and must close it.
func (c *ChatController) Stream(ctx context.Context, req types.ChatRequest) (io.ReadCloser, *llm.StreamError) {
	if err := c.validator.Validate(req.Messages); err != nil {
		return nil, &llm.StreamError{Status: http.StatusBadRequest, Message: err.Error()}
	}

	contextBlock := c.catalog.FetchContext(ctx)
	systemPrompt := prompt.BuildSystemPrompt(contextBlock, req.Language)

	logging.AppLogger.Info("relaying chat request",
		zap.Int("messages", len(req.Messages)),
		zap.String("language", req.Language),
		zap.Bool("catalog_grounded", contextBlock != ""),
	)

	resp, err := c.gateway.CreateStream(ctx, systemPrompt, req.Messages)
	if err != nil {
		var se *llm.StreamError
		if errors.As(err, &se) {
			return nil, se
		}
		// Transport failure reaching the gateway; details stay in the log.
		logging.ErrorLogger.Error("gateway unreachable", zap.Error(err))
		return nil, &llm.StreamError{Status: http.StatusInternalServerError, Message: "AI service error. Please try again."}
	}
	return resp.Body, nil
}
