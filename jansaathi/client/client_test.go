package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jansaathi/jansaathi/utils/types"
)

func sseChunk(content string) string {
	return `data: {"choices":[{"delta":{"content":"` + content + `"}}]}` + "\n\n"
}

func streamingServer(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, f := range frames {
			w.Write([]byte(sseChunk(f)))
			flusher.Flush()
		}
		w.Write([]byte("data: [DONE]\n"))
	}))
}

func TestSendStreamsAndCommits(t *testing.T) {
	server := streamingServer(t, "Nam", "aste, ", "farmer!")
	defer server.Close()

	c := New(server.URL, "token", "en")
	var deltas []string
	c.OnDelta = func(d string) { deltas = append(deltas, d) }

	if err := c.Send(context.Background(), "  Which schemes apply to me?  "); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected user+assistant, got %d messages", len(msgs))
	}
	if msgs[0].Role != types.RoleUser || msgs[0].Content != "Which schemes apply to me?" {
		t.Errorf("user message not trimmed/committed: %+v", msgs[0])
	}
	if msgs[1].Role != types.RoleAssistant || msgs[1].Content != "Namaste, farmer!" {
		t.Errorf("assistant message mis-assembled: %+v", msgs[1])
	}
	if len(deltas) != 3 {
		t.Errorf("expected 3 delta callbacks in order, got %v", deltas)
	}
	if c.State() != StateIdle {
		t.Errorf("expected Idle after commit, got %v", c.State())
	}
}

func TestSendErrorStatusRollsBack(t *testing.T) {
	cases := []struct {
		status   int
		body     string
		wantKind NoticeKind
	}{
		{http.StatusUnauthorized, `{"error":"expired"}`, NoticeAuthExpired},
		{http.StatusTooManyRequests, `{"error":"slow down"}`, NoticeRateLimited},
		{http.StatusPaymentRequired, `{"error":"quota"}`, NoticeUnavailable},
		{http.StatusBadRequest, `{"error":"Last message must be from user"}`, NoticeInvalidInput},
		{http.StatusInternalServerError, `{"error":"AI service error. Please try again."}`, NoticeFailure},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))

		c := New(server.URL, "token", "en")
		var notices []Notice
		c.OnNotice = func(n Notice) { notices = append(notices, n) }

		err := c.Send(context.Background(), "hello")
		server.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		if len(c.Messages()) != 0 {
			t.Errorf("status %d: optimistic user message must be rolled back", tc.status)
		}
		if len(notices) != 1 || notices[0].Kind != tc.wantKind {
			t.Errorf("status %d: expected one %v notice, got %v", tc.status, tc.wantKind, notices)
		}
		if c.State() != StateIdle {
			t.Errorf("status %d: expected Idle after rollback", tc.status)
		}
	}
}

func TestSendTransportErrorRollsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := New(server.URL, "token", "en")
	var notices []Notice
	c.OnNotice = func(n Notice) { notices = append(notices, n) }

	if err := c.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected transport error")
	}
	if len(c.Messages()) != 0 {
		t.Error("transcript must be clean after transport failure")
	}
	if len(notices) != 1 || notices[0].Kind != NoticeFailure {
		t.Errorf("expected one failure notice, got %v", notices)
	}
}

func TestSendRejectsInvalidInputWithoutRequest(t *testing.T) {
	var hit bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer server.Close()

	c := New(server.URL, "token", "en")
	var notices []Notice
	c.OnNotice = func(n Notice) { notices = append(notices, n) }

	if err := c.Send(context.Background(), "   "); err == nil {
		t.Fatal("expected validation error")
	}
	if hit {
		t.Error("invalid input must not reach the server")
	}
	if len(notices) != 1 || notices[0].Kind != NoticeInvalidInput {
		t.Errorf("expected invalid-input notice, got %v", notices)
	}
	if len(c.Messages()) != 0 {
		t.Error("nothing should be appended for invalid input")
	}
}

func TestSendBusyWhileStreaming(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		w.Write([]byte(sseChunk("partial")))
		flusher.Flush()
		<-release
		w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	c := New(server.URL, "token", "en")
	firstDelta := make(chan struct{})
	var once sync.Once
	c.OnDelta = func(string) { once.Do(func() { close(firstDelta) }) }

	done := make(chan error, 1)
	go func() { done <- c.Send(context.Background(), "first question") }()

	select {
	case <-firstDelta:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for stream to start")
	}

	if err := c.Send(context.Background(), "second question"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy during in-flight turn, got %v", err)
	}
	if err := c.Clear(); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy from Clear during in-flight turn, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if len(c.Messages()) != 2 {
		t.Errorf("expected committed turn, got %d messages", len(c.Messages()))
	}
}

func TestSendCancelDiscardsPartialTurn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		w.Write([]byte(sseChunk("partial answer")))
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := New(server.URL, "token", "en")
	var notices []Notice
	c.OnNotice = func(n Notice) { notices = append(notices, n) }
	c.OnDelta = func(string) { cancel() }

	err := c.Send(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// Full rollback: no half-written assistant turn, no dangling user turn.
	if len(c.Messages()) != 0 {
		t.Errorf("cancelled turn must be discarded, got %v", c.Messages())
	}
	if len(notices) != 0 {
		t.Errorf("cancellation is not an error notice, got %v", notices)
	}
	if c.State() != StateIdle {
		t.Errorf("expected Idle after cancellation, got %v", c.State())
	}
}
