// jansaathi/client/client.go
package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"jansaathi/jansaathi/services/llm"
	"jansaathi/jansaathi/services/validation"
	httputils "jansaathi/jansaathi/utils/http"
	"jansaathi/jansaathi/utils/types"
)

// State of the transcript. Only Idle accepts a new Send; a turn either
// commits in full or is rolled back in full, so the transcript never keeps
// a half-written assistant message.
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
	StateStreaming
)

// NoticeKind categorizes the single user-facing notification produced by a
// failed turn.
type NoticeKind int

const (
	NoticeAuthExpired NoticeKind = iota
	NoticeRateLimited
	NoticeUnavailable
	NoticeInvalidInput
	NoticeFailure
)

type Notice struct {
	Kind    NoticeKind
	Message string
}

// ErrBusy is returned when Send is called while a turn is still streaming.
var ErrBusy = errors.New("a response is still streaming")

// Client drives one conversation against the chat endpoint: optimistic
// user append, SSE decode into a single growing assistant message, full
// rollback on any failure before commit.
type Client struct {
	chatURL    string
	token      string
	language   string
	httpClient *http.Client
	validator  validation.Validator

	// OnDelta fires for every appended fragment, OnNotice once per failed
	// turn. Both may be nil. Set before the first Send.
	OnDelta  func(delta string)
	OnNotice func(n Notice)

	mu       sync.Mutex
	state    State
	messages []types.ChatMessage
}

func New(baseURL, token, language string) *Client {
	return &Client{
		chatURL:    strings.TrimSuffix(baseURL, "/") + "/chat/",
		token:      token,
		language:   language,
		httpClient: &http.Client{},
		validator:  validation.Default(),
		state:      StateIdle,
	}
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the committed transcript plus any in-flight
// turn.
func (c *Client) Messages() []types.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Clear starts a new conversation. It fails while a turn is in flight;
// cancel the Send context first.
func (c *Client) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return ErrBusy
	}
	c.messages = nil
	return nil
}

// Send posts one user turn and folds the streamed response into the
// transcript. It blocks until the turn commits or rolls back.
func (c *Client) Send(ctx context.Context, input string) error {
	userMsg := types.ChatMessage{Role: types.RoleUser, Content: strings.TrimSpace(input)}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	candidate := append(append([]types.ChatMessage{}, c.messages...), userMsg)
	if err := c.validator.Validate(candidate); err != nil {
		c.mu.Unlock()
		c.notify(Notice{Kind: NoticeInvalidInput, Message: err.Error()})
		return err
	}
	baseLen := len(c.messages)
	c.messages = candidate
	c.state = StateAwaitingResponse
	c.mu.Unlock()

	body := types.ChatRequest{Messages: candidate, Language: c.language}
	resp, err := httputils.PostStreamWithAuth(ctx, c.httpClient, c.chatURL, c.token, body)
	if err != nil {
		c.rollback(baseLen)
		c.notify(Notice{Kind: NoticeFailure, Message: "Failed to connect. Please check your internet connection."})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		notice := noticeForStatus(resp.StatusCode, resp.Body)
		c.rollback(baseLen)
		c.notify(notice)
		return errors.New(notice.Message)
	}

	c.mu.Lock()
	c.state = StateStreaming
	c.mu.Unlock()

	err = llm.DecodeStream(ctx, resp.Body, c.appendDelta)
	if err != nil {
		// Aborted or broken mid-stream: discard the whole turn rather than
		// commit a partial assistant message.
		c.rollback(baseLen)
		if !errors.Is(err, context.Canceled) {
			c.notify(Notice{Kind: NoticeFailure, Message: "Connection lost. Please resend your message."})
		}
		return err
	}

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
	return nil
}

// appendDelta folds one fragment into the in-flight assistant message,
// creating it on the first fragment.
func (c *Client) appendDelta(delta string) {
	c.mu.Lock()
	last := len(c.messages) - 1
	if last >= 0 && c.messages[last].Role == types.RoleAssistant {
		c.messages[last].Content += delta
	} else {
		c.messages = append(c.messages, types.ChatMessage{Role: types.RoleAssistant, Content: delta})
	}
	c.mu.Unlock()

	if c.OnDelta != nil {
		c.OnDelta(delta)
	}
}

func (c *Client) rollback(baseLen int) {
	c.mu.Lock()
	c.messages = c.messages[:baseLen]
	c.state = StateIdle
	c.mu.Unlock()
}

func (c *Client) notify(n Notice) {
	if c.OnNotice != nil {
		c.OnNotice(n)
	}
}

func noticeForStatus(status int, body io.Reader) Notice {
	var errResp types.ErrorResponse
	_ = json.NewDecoder(body).Decode(&errResp)

	switch status {
	case http.StatusUnauthorized:
		return Notice{Kind: NoticeAuthExpired, Message: "Session expired. Please log in again."}
	case http.StatusTooManyRequests:
		return Notice{Kind: NoticeRateLimited, Message: "Too many requests. Please wait a moment and try again."}
	case http.StatusPaymentRequired:
		return Notice{Kind: NoticeUnavailable, Message: "Service temporarily unavailable. Please try again later."}
	case http.StatusBadRequest:
		msg := errResp.Error
		if msg == "" {
			msg = "Invalid input. Please check your message and try again."
		}
		return Notice{Kind: NoticeInvalidInput, Message: msg}
	default:
		msg := errResp.Error
		if msg == "" {
			msg = "Failed to get response. Please try again."
		}
		return Notice{Kind: NoticeFailure, Message: msg}
	}
}
