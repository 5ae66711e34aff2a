package routes

import (
	"encoding/json"
	"net/http"

	"jansaathi/jansaathi/config"
	"jansaathi/jansaathi/controllers"
	"jansaathi/jansaathi/middlewares"
	"jansaathi/jansaathi/services/llm"
	httputils "jansaathi/jansaathi/utils/http"
	"jansaathi/jansaathi/utils/logging"
	"jansaathi/jansaathi/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ChatRoutes(ctrl *controllers.ChatController, cfg config.Config, limiter middlewares.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))
		gr.Use(middlewares.RateLimit(limiter))

		// POST /chat/ : relay one streaming assistant turn
		gr.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req types.ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httputils.WriteError(w, http.StatusBadRequest, "Invalid request body.")
				return
			}

			body, streamErr := ctrl.Stream(r.Context(), req)
			if streamErr != nil {
				httputils.WriteError(w, streamErr.Status, streamErr.Message)
				return
			}
			defer body.Close()

			// Raw passthrough. Framing correctness is the client decoder's
			// job; each chunk is flushed as it arrives.
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.WriteHeader(http.StatusOK)

			flusher, _ := w.(http.Flusher)
			buf := make([]byte, 4096)
			for {
				n, err := body.Read(buf)
				if n > 0 {
					if _, werr := w.Write(buf[:n]); werr != nil {
						return
					}
					if flusher != nil {
						flusher.Flush()
					}
				}
				if err != nil {
					return
				}
			}
		})
	})

	// GET /chat/ws : websocket variant for clients that cannot consume SSE.
	// The credential rides in the first frame instead of a header.
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}

		var input struct {
			Token       string            `json:"token"`
			ChatRequest types.ChatRequest `json:"chat_request"`
		}
		if err := json.Unmarshal(data, &input); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		if _, ok := middlewares.VerifyToken(input.Token, cfg.JWTSecret); !ok {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid token"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid token")
			return
		}
		if !limiter.Allow(middlewares.ClientID(r)) {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"Rate limit exceeded. Please try again in a moment."}`))
			conn.Close(websocket.StatusPolicyViolation, "rate limited")
			return
		}

		body, streamErr := ctrl.Stream(ctx, input.ChatRequest)
		if streamErr != nil {
			msg, _ := json.Marshal(types.ErrorResponse{Error: streamErr.Message})
			conn.Write(ctx, websocket.MessageText, msg)
			conn.Close(websocket.StatusInternalError, "stream error")
			return
		}
		defer body.Close()

		err = llm.DecodeStream(ctx, body, func(delta string) {
			conn.Write(ctx, websocket.MessageText, []byte(delta))
		})
		if err != nil {
			logging.ErrorLogger.Error("websocket stream decode error", zap.Error(err))
			conn.Close(websocket.StatusInternalError, "stream error")
			return
		}
		conn.Write(ctx, websocket.MessageText, []byte(`{"done":true}`))
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}
