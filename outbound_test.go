package binder

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rbaliyan/binder/sink/channel"
)

func newTestAdapter(t *testing.T, opts ...Option) (*OutboundAdapter, *channel.Sink) {
	t.Helper()
	snk := channel.New()
	adapter, err := NewOutboundAdapter(snk, opts...)
	if err != nil {
		t.Fatalf("NewOutboundAdapter failed: %v", err)
	}
	return adapter, snk
}

func TestNewOutboundAdapter(t *testing.T) {
	if _, err := NewOutboundAdapter(nil); !errors.Is(err, ErrSinkRequired) {
		t.Errorf("expected ErrSinkRequired, got %v", err)
	}
}

func TestTransformTextMessage(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	msg := NewMessage("hello", nil)
	rec, err := adapter.Transform([]byte("key-1"), msg)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if string(rec.Key) != "key-1" {
		t.Errorf("expected key to pass through, got %q", rec.Key)
	}

	values, err := ExtractHeaders(rec.Value)
	if err != nil {
		t.Fatalf("ExtractHeaders failed: %v", err)
	}
	if string(values.Payload.([]byte)) != "hello" {
		t.Errorf("expected hello, got %q", values.Payload)
	}
	if got := values.Headers.GetString(HeaderContentType); got != "text/plain" {
		t.Errorf("expected text/plain, got %q", got)
	}
	if _, ok := values.Headers[HeaderOriginalContentType]; ok {
		t.Error("expected no originalContentType without a declared content type")
	}
}

func TestTransformStructMessage(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	msg := NewMessage(order{ID: "ORD-1", Amount: 10}, Headers{
		HeaderContentType: "application/xml",
	})
	rec, err := adapter.Transform(nil, msg)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if rec.Key != nil {
		t.Errorf("expected nil key to pass through, got %q", rec.Key)
	}

	values, err := ExtractHeaders(rec.Value)
	if err != nil {
		t.Fatalf("ExtractHeaders failed: %v", err)
	}
	contentType, err := ParseMimeType(values.Headers.GetString(HeaderContentType))
	if err != nil {
		t.Fatalf("bad contentType header: %v", err)
	}
	if contentType.Type != "application" || contentType.Subtype != "x-object" {
		t.Errorf("expected application/x-object, got %s", contentType)
	}
	if contentType.Param(TypeParam) == "" {
		t.Error("expected a type parameter on the descriptor")
	}
	// The declared content type differs from the resolved one, so it is
	// retained under originalContentType.
	if got := values.Headers.GetString(HeaderOriginalContentType); got != "application/xml" {
		t.Errorf("expected application/xml, got %q", got)
	}
}

func TestTransformMatchingContentType(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	msg := NewMessage(`{"a":1}`, Headers{HeaderContentType: ApplicationJSON})
	rec, err := adapter.Transform(nil, msg)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	values, err := ExtractHeaders(rec.Value)
	if err != nil {
		t.Fatalf("ExtractHeaders failed: %v", err)
	}
	if got := values.Headers.GetString(HeaderContentType); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}
	if _, ok := values.Headers[HeaderOriginalContentType]; ok {
		t.Error("expected no originalContentType when resolution matches")
	}
}

func TestTransformIllegalMessages(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	t.Run("non-message value with embedding enabled", func(t *testing.T) {
		for _, value := range []any{[]byte("raw"), "text", 42, order{}} {
			if _, err := adapter.Transform(nil, value); !errors.Is(err, ErrIllegalMessage) {
				t.Errorf("expected ErrIllegalMessage for %T, got %v", value, err)
			}
		}
	})

	t.Run("unsupported key type", func(t *testing.T) {
		msg := NewMessage("hello", nil)
		if _, err := adapter.Transform(42, msg); !errors.Is(err, ErrIllegalMessage) {
			t.Errorf("expected ErrIllegalMessage, got %v", err)
		}
	})

	t.Run("unencodable header value surfaces as illegal message", func(t *testing.T) {
		msg := NewMessage("hello", Headers{HeaderCorrelationID: make(chan int)})
		_, err := adapter.Transform(nil, msg)
		if !errors.Is(err, ErrIllegalMessage) {
			t.Errorf("expected ErrIllegalMessage, got %v", err)
		}
		if !errors.Is(err, ErrSerialization) {
			t.Errorf("expected ErrSerialization underneath, got %v", err)
		}
	})

	t.Run("serialization failure surfaces as illegal message", func(t *testing.T) {
		cause := errors.New("encoder down")
		broken, _ := newTestAdapter(t, WithEncoder(failingEncoder{err: cause}))
		msg := NewMessage(order{}, nil)
		_, err := broken.Transform(nil, msg)
		if !errors.Is(err, ErrIllegalMessage) {
			t.Errorf("expected ErrIllegalMessage, got %v", err)
		}
		if !errors.Is(err, ErrSerialization) {
			t.Errorf("expected ErrSerialization underneath, got %v", err)
		}
	})
}

func TestTransformEmbeddingDisabled(t *testing.T) {
	adapter, _ := newTestAdapter(t, WithEmbeddedHeaders(false))

	t.Run("message payload emitted bare", func(t *testing.T) {
		msg := NewMessage("hello", nil)
		rec, err := adapter.Transform(nil, msg)
		if err != nil {
			t.Fatalf("Transform failed: %v", err)
		}
		if string(rec.Value) != "hello" {
			t.Errorf("expected bare payload, got %q", rec.Value)
		}
		if HasEmbeddedHeaders(rec.Value) {
			t.Error("expected no envelope marker")
		}
	})

	t.Run("raw bytes pass through", func(t *testing.T) {
		rec, err := adapter.Transform(nil, []byte("raw"))
		if err != nil {
			t.Fatalf("Transform failed: %v", err)
		}
		if string(rec.Value) != "raw" {
			t.Errorf("expected raw, got %q", rec.Value)
		}
	})
}

func TestBind(t *testing.T) {
	t.Run("one write per element, order preserved", func(t *testing.T) {
		adapter, snk := newTestAdapter(t)
		stream := Stream(func(yield func(any, any) bool) {
			for _, text := range []string{"one", "two", "three"} {
				if !yield([]byte(text), NewMessage(text, nil)) {
					return
				}
			}
		})
		if err := adapter.Bind(context.Background(), "orders", stream); err != nil {
			t.Fatalf("Bind failed: %v", err)
		}

		records := snk.Records("orders")
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		for i, text := range []string{"one", "two", "three"} {
			if string(records[i].Key) != text {
				t.Errorf("record %d: expected key %q, got %q", i, text, records[i].Key)
			}
			values, err := ExtractHeaders(records[i].Value)
			if err != nil {
				t.Fatalf("record %d: ExtractHeaders failed: %v", i, err)
			}
			if string(values.Payload.([]byte)) != text {
				t.Errorf("record %d: expected %q, got %q", i, text, values.Payload)
			}
		}
	})

	t.Run("per-element failures do not stop the stream", func(t *testing.T) {
		var failures []error
		adapter, snk := newTestAdapter(t, WithErrorHandler(func(err error) {
			failures = append(failures, err)
		}))
		stream := Stream(func(yield func(any, any) bool) {
			_ = yield(nil, NewMessage("good", nil)) &&
				yield(nil, "not a message") &&
				yield(nil, NewMessage("also good", nil))
		})
		if err := adapter.Bind(context.Background(), "orders", stream); err != nil {
			t.Fatalf("Bind failed: %v", err)
		}
		if got := len(snk.Records("orders")); got != 2 {
			t.Errorf("expected 2 records, got %d", got)
		}
		if len(failures) != 1 || !errors.Is(failures[0], ErrIllegalMessage) {
			t.Errorf("expected one ErrIllegalMessage failure, got %v", failures)
		}
	})

	t.Run("cancelled context stops the stream", func(t *testing.T) {
		adapter, _ := newTestAdapter(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		stream := Stream(func(yield func(any, any) bool) {
			yield(nil, NewMessage("never", nil))
		})
		if err := adapter.Bind(ctx, "orders", stream); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestTransformExtraHeaders(t *testing.T) {
	adapter, _ := newTestAdapter(t, WithHeaders("tenant"))

	msg := NewMessage("hello", Headers{"tenant": "acme", "internal": "hidden"})
	rec, err := adapter.Transform(nil, msg)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	values, err := ExtractHeaders(rec.Value)
	if err != nil {
		t.Fatalf("ExtractHeaders failed: %v", err)
	}
	if got := values.Headers.GetString("tenant"); got != "acme" {
		t.Errorf("expected acme, got %q", got)
	}
	if _, ok := values.Headers["internal"]; ok {
		t.Error("expected header outside the allow-list to be dropped")
	}
	want := Headers{
		"tenant":          "acme",
		HeaderID:          msg.Header(HeaderID),
		HeaderContentType: "text/plain",
	}
	if !cmp.Equal(values.Headers, want) {
		t.Errorf("diff : %v", cmp.Diff(values.Headers, want))
	}
}
