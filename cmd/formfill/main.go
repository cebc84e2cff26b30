// formfill fills a published form from the terminal. It can fetch the form
// definition from a running server by share URL and submit the response, or
// dry-run against a local YAML definition.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/render"
	"github.com/goliatone/go-formpress/pkg/renderers/tui"
	"github.com/goliatone/go-formpress/pkg/schemafile"
)

func main() {
	shareURL := pflag.String("url", "", "Share URL of a published form, e.g. https://host/f/<token>")
	file := pflag.String("file", "", "Local YAML form definition (dry run, nothing submitted)")
	pflag.Parse()

	if err := run(*shareURL, *file); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(shareURL, file string) error {
	switch {
	case file != "":
		return fillLocal(file)
	case shareURL != "":
		return fillRemote(shareURL)
	default:
		return fmt.Errorf("one of --url or --file is required")
	}
}

func fillLocal(path string) error {
	schema, err := schemafile.Load(path)
	if err != nil {
		return err
	}
	schema, err = model.Publish(schema)
	if err != nil {
		return err
	}
	assignLocalIDs(&schema)

	input, err := tui.New().Fill(schema)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func fillRemote(shareURL string) error {
	schema, token, base, err := fetchForm(shareURL)
	if err != nil {
		return err
	}

	input, err := tui.New().Fill(schema)
	if err != nil {
		return err
	}

	return submit(base, token, input)
}

// fetchForm pulls the respondable definition from the share URL's JSON
// representation.
func fetchForm(shareURL string) (model.FormSchema, string, string, error) {
	parsed, err := url.Parse(shareURL)
	if err != nil {
		return model.FormSchema{}, "", "", fmt.Errorf("parse share url: %w", err)
	}
	token := strings.TrimPrefix(parsed.Path, "/f/")
	if token == "" || token == parsed.Path {
		return model.FormSchema{}, "", "", fmt.Errorf("share url must look like https://host/f/<token>")
	}
	base := parsed.Scheme + "://" + parsed.Host

	req, err := http.NewRequest(http.MethodGet, shareURL, nil)
	if err != nil {
		return model.FormSchema{}, "", "", err
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return model.FormSchema{}, "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.FormSchema{}, "", "", fmt.Errorf("fetch form: status %d", resp.StatusCode)
	}

	var body struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Fields      []model.FormField `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.FormSchema{}, "", "", fmt.Errorf("decode form: %w", err)
	}

	schema := model.FormSchema{
		Title:       body.Title,
		Description: body.Description,
		Status:      model.StatusPublished,
		ShareToken:  token,
		Fields:      body.Fields,
	}
	return schema, token, base, nil
}

func submit(base, token string, input render.Input) error {
	payload, err := json.Marshal(map[string]any{
		"formId":          token,
		"respondentName":  input.RespondentName,
		"respondentEmail": input.RespondentEmail,
		"values":          input.Values,
	})
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(base+"/api/submissions", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		Success      bool              `json:"success"`
		SubmissionID string            `json:"submissionId"`
		Error        string            `json:"error"`
		Fields       map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !body.Success {
		if len(body.Fields) > 0 {
			return fmt.Errorf("rejected: %v", body.Fields)
		}
		return fmt.Errorf("rejected: %s", body.Error)
	}

	fmt.Println("submitted:", body.SubmissionID)
	return nil
}

// assignLocalIDs gives file-loaded fields stable ids so the fill loop can
// key values; a real store does this on save.
func assignLocalIDs(schema *model.FormSchema) {
	for i := range schema.Fields {
		if schema.Fields[i].ID == "" {
			schema.Fields[i].ID = fmt.Sprintf("field-%d", i)
		}
	}
}
