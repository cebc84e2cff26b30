package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Render produces the PDF bytes for a submission document. Page content is
// described as pdfcpu create JSON and handed to the library, so the layout
// itself never touches PDF primitives.
func Render(doc Document) ([]byte, error) {
	spec, err := createSpec(doc)
	if err != nil {
		return nil, err
	}

	conf := pdfmodel.NewDefaultConfiguration()
	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(spec), &out, conf); err != nil {
		return nil, fmt.Errorf("document: render pdf: %w", err)
	}
	return out.Bytes(), nil
}

// createSpec serializes the paged layout into pdfcpu's create JSON format.
func createSpec(doc Document) ([]byte, error) {
	pages := map[string]any{}
	for i, pageLines := range layout(doc) {
		var texts []map[string]any
		y := pageHeight - marginTop
		for _, l := range pageLines {
			if l.text != "" {
				texts = append(texts, map[string]any{
					"value":    l.text,
					"anchor":   "tl",
					"position": []float64{marginLeft + l.indent, y},
					"font": map[string]any{
						"name": "Helvetica",
						"size": l.size,
					},
				})
			}
			y -= lineHeight
		}
		pages[strconv.Itoa(i+1)] = map[string]any{
			"content": map[string]any{"text": texts},
		}
	}

	spec, err := json.Marshal(map[string]any{
		"paper": "A4",
		"pages": pages,
	})
	if err != nil {
		return nil, fmt.Errorf("document: encode page spec: %w", err)
	}
	return spec, nil
}
