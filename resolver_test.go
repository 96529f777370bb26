package binder

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
)

type order struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

func TestResolveFastPaths(t *testing.T) {
	r := NewContentTypeResolver()

	t.Run("nil payload is a caller bug", func(t *testing.T) {
		_, err := r.Resolve(nil, "")
		if !errors.Is(err, ErrNilPayload) {
			t.Errorf("expected ErrNilPayload, got %v", err)
		}
	})

	t.Run("bytes resolve to octet-stream", func(t *testing.T) {
		mt, err := r.Resolve([]byte{1, 2, 3}, "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if !mt.Equal(OctetStream) {
			t.Errorf("expected application/octet-stream, got %s", mt)
		}
	})

	t.Run("text resolves to text/plain without hint", func(t *testing.T) {
		mt, err := r.Resolve("hello", "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if !mt.Equal(TextPlain) {
			t.Errorf("expected text/plain, got %s", mt)
		}
	})

	t.Run("json hint disambiguates text", func(t *testing.T) {
		mt, err := r.Resolve(`{"a":1}`, "application/json")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if !mt.Equal(ApplicationJSON) {
			t.Errorf("expected application/json, got %s", mt)
		}
		// Anything but the exact JSON content type keeps text/plain.
		mt, err = r.Resolve(`{"a":1}`, "application/json; charset=utf-8")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if !mt.Equal(TextPlain) {
			t.Errorf("expected text/plain, got %s", mt)
		}
	})
}

func TestResolveObjectTypes(t *testing.T) {
	r := NewContentTypeResolver()

	t.Run("struct resolves to qualified x-object descriptor", func(t *testing.T) {
		mt, err := r.Resolve(order{ID: "ORD-1"}, "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if mt.Type != "application" || mt.Subtype != "x-object" {
			t.Fatalf("expected application/x-object, got %s/%s", mt.Type, mt.Subtype)
		}
		name := mt.Param(TypeParam)
		if !strings.HasSuffix(name, ".order") || !strings.Contains(name, "binder") {
			t.Errorf("expected package-qualified type name, got %q", name)
		}
	})

	t.Run("resolution is idempotent and cached", func(t *testing.T) {
		first, err := r.Resolve(order{}, "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		second, err := r.Resolve(order{}, "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if !first.Equal(second) {
			t.Errorf("expected equal descriptors, got %s and %s", first, second)
		}
		if _, ok := r.cache.Load(typeName(reflect.TypeOf(order{}))); !ok {
			t.Error("expected cache to be populated after first resolution")
		}
	})

	t.Run("slice type name has no unquoted bracket", func(t *testing.T) {
		mt, err := r.Resolve([]order{{ID: "ORD-1"}}, "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		name := mt.Param(TypeParam)
		if !strings.HasPrefix(name, "[]") {
			t.Fatalf("expected slice type name, got %q", name)
		}
		rendered := mt.String()
		if !strings.Contains(rendered, `type="[]`) {
			t.Errorf("expected bracket to be quoted in %q", rendered)
		}
		parsed, err := ParseMimeType(rendered)
		if err != nil {
			t.Fatalf("descriptor does not round-trip: %v", err)
		}
		if parsed.Param(TypeParam) != name {
			t.Errorf("expected %q after round trip, got %q", name, parsed.Param(TypeParam))
		}
	})

	t.Run("concurrent first resolutions agree", func(t *testing.T) {
		type invoice struct{ N int }
		fresh := NewContentTypeResolver()
		var wg sync.WaitGroup
		results := make([]MimeType, 16)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				mt, err := fresh.Resolve(invoice{N: i}, "")
				if err != nil {
					t.Errorf("Resolve failed: %v", err)
					return
				}
				results[i] = mt
			}(i)
		}
		wg.Wait()
		for i := 1; i < len(results); i++ {
			if !results[i].Equal(results[0]) {
				t.Errorf("result %d differs: %s vs %s", i, results[i], results[0])
			}
		}
	})
}
