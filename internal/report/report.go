package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/clipscrub/clipscrub/internal/redact"
	"gopkg.in/yaml.v3"
)

// Report is the per-run summary shown after sanitization. The sanitized text
// itself never appears here.
type Report struct {
	Summary     redact.Summary `json:"summary" yaml:"summary"`
	Replaced    int            `json:"replaced" yaml:"replaced"`
	SafeToPaste bool           `json:"safe_to_paste" yaml:"safe_to_paste"`
}

// FromResult builds a report from a redaction result
func FromResult(res redact.Result) Report {
	return Report{
		Summary:     res.Summary,
		Replaced:    res.Replaced,
		SafeToPaste: true,
	}
}

// Writer renders a report in one output format
type Writer interface {
	Write(w io.Writer, r Report) error
}

// NewWriter returns the writer for a format name: text, json or yaml
func NewWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "yaml":
		return &YAMLWriter{}, nil
	}
	return nil, fmt.Errorf("unknown report format: %s", format)
}

// TextWriter prints the human-readable summary
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, r Report) error {
	lines := []struct {
		label string
		count int
	}{
		{"Emails", r.Summary.Emails},
		{"IPs", r.Summary.IPs},
		{"IPv6", r.Summary.IPv6},
		{"UUIDs", r.Summary.UUIDs},
		{"JWTs", r.Summary.JWTs},
		{"Tokens", r.Summary.Tokens},
	}

	if _, err := fmt.Fprintln(w, "clipscrub cleaned your clipboard:"); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "- %s: %d\n", line.label, line.count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "Safe to paste.")
	return err
}

// JSONWriter outputs the report as indented JSON
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// YAMLWriter outputs the report as YAML
type YAMLWriter struct{}

func (y *YAMLWriter) Write(w io.Writer, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
