package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDraft(t *testing.T) {
	draft := NewDraft("  Intake Form ", " Patient intake ")

	want := FormSchema{
		Title:       "Intake Form",
		Description: "Patient intake",
		Status:      StatusDraft,
		Fields:      []FormField{},
	}
	if diff := cmp.Diff(want, draft); diff != "" {
		t.Fatalf("NewDraft mismatch (-want +got):\n%s", diff)
	}
	if IsRespondable(draft) {
		t.Fatal("draft form must not be respondable")
	}
}

func TestPublish_MintsTokenOnce(t *testing.T) {
	draft := NewDraft("Intake Form", "")

	published, err := Publish(draft)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.Status != StatusPublished {
		t.Fatalf("status = %q, want %q", published.Status, StatusPublished)
	}
	if len(published.ShareToken) < 10 {
		t.Fatalf("share token %q shorter than 10 characters", published.ShareToken)
	}
	if !IsRespondable(published) {
		t.Fatal("published form must be respondable")
	}

	again, err := Publish(published)
	if err != nil {
		t.Fatalf("re-publish: %v", err)
	}
	if again.ShareToken != published.ShareToken {
		t.Fatalf("re-publish minted a new token: %q != %q", again.ShareToken, published.ShareToken)
	}
}

func TestPublish_EmptyTitle(t *testing.T) {
	_, err := Publish(NewDraft("   ", ""))
	if !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("Publish with blank title = %v, want ErrEmptyTitle", err)
	}
}

func TestNewShareToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		token, err := NewShareToken()
		if err != nil {
			t.Fatalf("NewShareToken: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = struct{}{}
	}
}
