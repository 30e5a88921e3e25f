package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"mining-cost-calculator/internal/estimator"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// pageData is the view of one controller state.
type pageData struct {
	Inputs  []estimator.FieldInput
	Error   string
	Loading bool
	Cards   []estimator.ResultCard
}

func newPageData(s estimator.State) pageData {
	d := pageData{
		Inputs:  estimator.FieldInputs(s.Input),
		Loading: s.Loading,
	}
	if s.Err != nil {
		d.Error = s.Err.Message
	}
	if s.Result != nil {
		d.Cards = estimator.ResultCards(*s.Result)
	}
	return d
}

// loadTemplates parses the page and its two partials.
func loadTemplates() (*template.Template, error) {
	tmpl, err := template.New("page.tmpl").ParseFS(templateFS,
		"templates/page.tmpl",
		"templates/field_input.tmpl",
		"templates/result_card.tmpl",
	)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// renderPage executes the page into a buffer first so a template error never
// leaves a half-written response.
func renderPage(w http.ResponseWriter, tmpl *template.Template, status int, s estimator.State) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "page.tmpl", newPageData(s)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}
