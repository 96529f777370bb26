package binder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewMessage(t *testing.T) {
	t.Run("generates an id header when absent", func(t *testing.T) {
		msg := NewMessage("hello", nil)
		if msg.Header(HeaderID) == "" || msg.Header(HeaderID) == nil {
			t.Error("expected a generated id header")
		}
	})

	t.Run("keeps a caller-supplied id", func(t *testing.T) {
		msg := NewMessage("hello", Headers{HeaderID: "my-id"})
		if got := msg.Header(HeaderID); got != "my-id" {
			t.Errorf("expected my-id, got %v", got)
		}
	})

	t.Run("copies the header map on construction", func(t *testing.T) {
		headers := Headers{HeaderCorrelationID: "corr-1"}
		msg := NewMessage("hello", headers)
		headers[HeaderCorrelationID] = "mutated"
		if got := msg.Header(HeaderCorrelationID); got != "corr-1" {
			t.Errorf("expected corr-1, got %v", got)
		}
	})

	t.Run("Headers returns a copy", func(t *testing.T) {
		msg := NewMessage("hello", Headers{HeaderCorrelationID: "corr-1"})
		msg.Headers()[HeaderCorrelationID] = "mutated"
		if got := msg.Header(HeaderCorrelationID); got != "corr-1" {
			t.Errorf("expected corr-1, got %v", got)
		}
	})
}

func TestHeadersGetString(t *testing.T) {
	h := Headers{
		"plain":   "text/plain",
		"typed":   ApplicationJSON,
		"number":  42,
		"nothing": nil,
	}
	if got := h.GetString("plain"); got != "text/plain" {
		t.Errorf("expected text/plain, got %q", got)
	}
	if got := h.GetString("typed"); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}
	if got := h.GetString("number"); got != "42" {
		t.Errorf("expected 42, got %q", got)
	}
	if got := h.GetString("nothing"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := h.GetString("missing"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestMessageValues(t *testing.T) {
	msg := NewMessage("hello", Headers{HeaderCorrelationID: "corr-1"})
	values := NewMessageValues(msg)

	// Mutating the working copy must not touch the source message.
	values.Headers[HeaderCorrelationID] = "changed"
	values.Payload = "other"
	if got := msg.Header(HeaderCorrelationID); got != "corr-1" {
		t.Errorf("expected corr-1, got %v", got)
	}
	if got := msg.Payload(); got != "hello" {
		t.Errorf("expected hello, got %v", got)
	}

	frozen := values.ToMessage()
	if got := frozen.Payload(); got != "other" {
		t.Errorf("expected other, got %v", got)
	}
	if !cmp.Equal(frozen.Header(HeaderCorrelationID), "changed") {
		t.Errorf("expected changed, got %v", frozen.Header(HeaderCorrelationID))
	}
}
