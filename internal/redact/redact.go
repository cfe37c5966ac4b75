package redact

import (
	"strings"

	"github.com/clipscrub/clipscrub/internal/detect"
	"github.com/clipscrub/clipscrub/internal/logger"
	"go.uber.org/zap"
)

// Summary counts replaced spans per kind
type Summary struct {
	Emails int `json:"emails" yaml:"emails"`
	IPs    int `json:"ips" yaml:"ips"`
	IPv6   int `json:"ipv6" yaml:"ipv6"`
	UUIDs  int `json:"uuids" yaml:"uuids"`
	JWTs   int `json:"jwts" yaml:"jwts"`
	Tokens int `json:"tokens" yaml:"tokens"`
}

// Total returns the number of spans replaced across all kinds
func (s Summary) Total() int {
	return s.Emails + s.IPs + s.IPv6 + s.UUIDs + s.JWTs + s.Tokens
}

func (s *Summary) add(kind detect.Kind) {
	switch kind {
	case detect.Email:
		s.Emails++
	case detect.IPv4:
		s.IPs++
	case detect.IPv6:
		s.IPv6++
	case detect.UUID:
		s.UUIDs++
	case detect.JWT:
		s.JWTs++
	case detect.Token:
		s.Tokens++
	}
}

// Options controls a single scrub invocation
type Options struct {
	StablePlaceholders bool
}

// Result contains the sanitized text and the per-kind count summary
type Result struct {
	Text     string
	Summary  Summary
	Replaced int
}

// Engine substitutes resolved detector spans with placeholders
type Engine struct {
	detector *detect.Detector
	logger   *logger.Logger
}

// NewEngine creates a redaction engine on top of a detector
func NewEngine(d *detect.Detector, log *logger.Logger) *Engine {
	return &Engine{detector: d, logger: log}
}

// Scrub sanitizes the input in a single forward pass over the resolved span
// list. Spans arrive non-overlapping and start-ordered, so the output is
// assembled from untouched gaps plus placeholders and no offset is reused
// after a substitution. Zero matches returns the input unchanged.
func (e *Engine) Scrub(text string, opts Options) Result {
	spans := e.detector.Detect(text)
	if len(spans) == 0 {
		return Result{Text: text}
	}

	alloc := newAllocator(opts.StablePlaceholders)

	var out strings.Builder
	out.Grow(len(text))

	var summary Summary
	last := 0
	for _, span := range spans {
		out.WriteString(text[last:span.Start])
		out.WriteString(alloc.placeholder(span.Kind, span.Text))
		summary.add(span.Kind)
		last = span.End
	}
	out.WriteString(text[last:])

	e.logger.Debug("Redaction complete",
		zap.Int("replaced", len(spans)),
		zap.Bool("stable", opts.StablePlaceholders),
	)

	return Result{
		Text:     out.String(),
		Summary:  summary,
		Replaced: len(spans),
	}
}
