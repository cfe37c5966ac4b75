package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/clipscrub/clipscrub/internal/redact"
	"gopkg.in/yaml.v3"
)

func sampleReport() Report {
	return FromResult(redact.Result{
		Summary:  redact.Summary{Emails: 1, IPs: 1},
		Replaced: 2,
	})
}

func TestNewWriter(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml"} {
		if _, err := NewWriter(format); err != nil {
			t.Errorf("Expected writer for %q, got error: %v", format, err)
		}
	}
	if _, err := NewWriter("sarif"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "clipscrub cleaned your clipboard:\n" +
		"- Emails: 1\n" +
		"- IPs: 1\n" +
		"- IPv6: 0\n" +
		"- UUIDs: 0\n" +
		"- JWTs: 0\n" +
		"- Tokens: 0\n" +
		"Safe to paste.\n"
	if buf.String() != want {
		t.Errorf("Unexpected text output:\n%s", buf.String())
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.Summary.Emails != 1 || decoded.Summary.IPs != 1 {
		t.Errorf("Unexpected summary: %+v", decoded.Summary)
	}
	if !decoded.SafeToPaste {
		t.Error("safe_to_paste not set")
	}
	if !strings.Contains(buf.String(), `"safe_to_paste"`) {
		t.Errorf("Missing snake_case field name: %s", buf.String())
	}
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded Report
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
	if decoded.Replaced != 2 || !decoded.SafeToPaste {
		t.Errorf("Unexpected decoded report: %+v", decoded)
	}
}
