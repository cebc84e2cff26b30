package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpress/pkg/model"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }

func (s stubRenderer) Render(_ context.Context, _ model.FormSchema, _ RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistrySelectsByName(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla"})
	registry.MustRegister(stubRenderer{name: "plain"})

	renderer, err := registry.Get("plain")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if renderer.Name() != "plain" {
		t.Fatalf("selected %q, want plain", renderer.Name())
	}
	if diff := cmp.Diff([]string{"plain", "vanilla"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryUnknownName(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla"})

	_, err := registry.Get("markdown")
	if !errors.Is(err, ErrUnknownRenderer) {
		t.Fatalf("Get unknown = %v, want ErrUnknownRenderer", err)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla"})

	if err := registry.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected error for empty name")
	}
}
