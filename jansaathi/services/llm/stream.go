// jansaathi/services/llm/stream.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// EventType classifies one decoded SSE line.
type EventType int

const (
	EventIgnore EventType = iota
	EventDelta
	EventDone
)

// Event is the narrow adapter over the upstream wire format: accumulation
// logic only ever sees Delta, Done or Ignore, never raw frames.
type Event struct {
	Type  EventType
	Delta string
}

const dataPrefix = "data: "

// Decoder incrementally decodes an OpenAI-style SSE delta stream. Bytes go
// in via Feed in whatever chunks the network delivers; complete events come
// out. A data frame cut mid-JSON by a chunk boundary stays buffered until
// the rest of it arrives, so feeding a stream byte-by-byte yields exactly
// the same deltas as feeding it whole.
type Decoder struct {
	buf  []byte
	done bool
}

// Feed appends raw bytes and returns the events they complete. After a
// [DONE] sentinel the decoder ignores everything else.
func (d *Decoder) Feed(p []byte) []Event {
	if d.done {
		return nil
	}
	d.buf = append(d.buf, p...)

	var events []Event
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}
		ev, complete := parseLine(string(d.buf[:i]))
		if !complete {
			// Incomplete frame, not a malformed one: wait for more bytes.
			break
		}
		d.buf = d.buf[i+1:]
		switch ev.Type {
		case EventDelta:
			events = append(events, ev)
		case EventDone:
			d.done = true
			events = append(events, ev)
			return events
		}
	}
	return events
}

// Flush runs the best-effort final pass over residual buffered content once
// the stream has ended. Unparseable residue is dropped.
func (d *Decoder) Flush() []Event {
	if d.done || len(d.buf) == 0 {
		return nil
	}
	raw := string(d.buf)
	d.buf = nil

	var events []Event
	for _, line := range strings.Split(raw, "\n") {
		ev, complete := parseLine(line)
		if !complete {
			continue
		}
		switch ev.Type {
		case EventDelta:
			events = append(events, ev)
		case EventDone:
			d.done = true
			return events
		}
	}
	return events
}

// Done reports whether the [DONE] sentinel has been seen.
func (d *Decoder) Done() bool { return d.done }

type deltaChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// parseLine classifies one line. complete == false means a data frame that
// does not parse yet and should be retried once more bytes arrive; every
// other outcome is final.
func parseLine(line string) (Event, bool) {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ":") {
		return Event{Type: EventIgnore}, true
	}
	if !strings.HasPrefix(line, dataPrefix) {
		return Event{Type: EventIgnore}, true
	}
	payload := strings.TrimSpace(line[len(dataPrefix):])
	if payload == "[DONE]" {
		return Event{Type: EventDone}, true
	}

	var chunk deltaChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return Event{}, false
	}
	if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
		return Event{Type: EventDelta, Delta: chunk.Choices[0].Delta.Content}, true
	}
	return Event{Type: EventIgnore}, true
}

// DecodeStream reads r to completion, invoking onDelta for every content
// fragment in arrival order. It returns nil on a clean end of stream
// (either the [DONE] sentinel or EOF after the final flush).
func DecodeStream(ctx context.Context, r io.Reader, onDelta func(string)) error {
	var d Decoder
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			for _, ev := range d.Feed(buf[:n]) {
				if ev.Type == EventDelta {
					onDelta(ev.Delta)
				}
			}
			if d.Done() {
				return nil
			}
		}
		if err != nil {
			if err == io.EOF {
				for _, ev := range d.Flush() {
					if ev.Type == EventDelta {
						onDelta(ev.Delta)
					}
				}
				return nil
			}
			return err
		}
	}
}
