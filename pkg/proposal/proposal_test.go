package proposal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpress/pkg/model"
)

func TestNormalizeDropsInvalidFields(t *testing.T) {
	raw := rawProposal{
		Title: "Gym Waiver",
		Fields: []rawField{
			{Label: "Full name", Type: "text", Required: true},
			{Label: "Mystery", Type: "hologram"},
			{Label: "Days", Type: "checkbox", Options: []string{"Mon", " ", "Tue"}},
			{Label: "Sign here", Type: "signature", Placeholder: "ignored"},
		},
	}

	got, err := normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := []model.FormField{
		{Label: "Full name", Type: model.FieldTypeText, Required: true, SortOrder: 0},
		{Label: "Days", Type: model.FieldTypeCheckbox, Options: []string{"Mon", "Tue"}, SortOrder: 1},
		{Label: "Sign here", Type: model.FieldTypeSignature, SortOrder: 2},
	}
	if diff := cmp.Diff(want, got.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeAllInvalidIsError(t *testing.T) {
	_, err := normalize(rawProposal{Fields: []rawField{{Label: "X", Type: "nope"}}})
	if !errors.Is(err, ErrNoFields) {
		t.Errorf("err = %v, want ErrNoFields", err)
	}
}

func TestOpenRouterPropose(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		content, _ := json.Marshal(rawProposal{
			Title: "Visitor Log",
			Fields: []rawField{
				{Label: "Name", Type: "text", Required: true},
				{Label: "Visit date", Type: "date"},
			},
		})
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": string(content)}},
			},
		})
	}))
	defer server.Close()

	o := NewOpenRouter("key-123", WithEndpoint(server.URL))
	got, err := o.Propose(context.Background(), "https://blobs.example/forms/scan.png", "image/png")
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}

	if gotAuth != "Bearer key-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %q, want json_object", gotReq.ResponseFormat.Type)
	}
	if got.Title != "Visitor Log" || len(got.Fields) != 2 {
		t.Errorf("proposal = %+v", got)
	}
	if got.Fields[1].Type != model.FieldTypeDate {
		t.Errorf("second field type = %q", got.Fields[1].Type)
	}
}

func TestOpenRouterProposeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	o := NewOpenRouter("key", WithEndpoint(server.URL))
	_, err := o.Propose(context.Background(), "https://blobs.example/x.png", "image/png")

	var perr *SchemaProposalError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want SchemaProposalError", err)
	}
	if perr.Stage != "call model" {
		t.Errorf("stage = %q", perr.Stage)
	}
}
