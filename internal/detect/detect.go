package detect

import (
	"fmt"
	"math"
	"net"
	"regexp"
	"strings"

	"github.com/clipscrub/clipscrub/internal/config"
	"github.com/clipscrub/clipscrub/internal/logger"
	"go.uber.org/zap"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	ipv4Re  = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|1?\d?\d)\.){3}(?:25[0-5]|2[0-4]\d|1?\d?\d)\b`)
	uuidRe  = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}\b`)
	jwtRe   = regexp.MustCompile(`\b[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\b`)

	// Maximal runs of hex digits and colons; candidates are confirmed with
	// net.ParseIP, which handles compressed forms and octet bounds.
	ipv6RunRe = regexp.MustCompile(`[0-9a-fA-F:]+`)
)

// Detector scans text and emits candidate spans for every enabled kind.
// Detection is total: any byte sequence is accepted and the worst outcome is
// an empty span list.
type Detector struct {
	enabled   map[Kind]bool
	tokenRe   *regexp.Regexp
	threshold float64
	allowlist map[string]struct{}
	logger    *logger.Logger
}

// New creates a detector from the redaction configuration
func New(cfg config.RedactionConfig, log *logger.Logger) (*Detector, error) {
	d := &Detector{
		enabled:   make(map[Kind]bool),
		tokenRe:   regexp.MustCompile(fmt.Sprintf(`\b[A-Za-z0-9_-]{%d,}\b`, cfg.Entropy.MinLength)),
		threshold: cfg.Entropy.Threshold,
		allowlist: make(map[string]struct{}),
		logger:    log,
	}

	if err := d.configureDetectors(cfg.Detectors); err != nil {
		return nil, fmt.Errorf("failed to configure detectors: %w", err)
	}

	for _, word := range cfg.Entropy.Allowlist {
		d.allowlist[strings.ToLower(word)] = struct{}{}
	}

	log.Info("Detector initialized",
		zap.Int("enabled_kinds", d.countEnabled()),
		zap.Int("allowlist_size", len(d.allowlist)),
		zap.Float64("entropy_threshold", cfg.Entropy.Threshold),
	)

	return d, nil
}

// configureDetectors enables kinds based on configuration names
func (d *Detector) configureDetectors(names []string) error {
	for _, k := range Kinds {
		d.enabled[k] = false
	}

	for _, name := range names {
		if name == "all" {
			for _, k := range Kinds {
				d.enabled[k] = true
			}
			continue
		}

		kind, ok := KindFromName(name)
		if !ok {
			return fmt.Errorf("unknown detector: %s", name)
		}
		d.enabled[kind] = true
	}

	return nil
}

// Detect scans the input and returns the resolved, non-overlapping span list
// in start order.
func (d *Detector) Detect(text string) []Span {
	var candidates []Span
	for _, kind := range Kinds {
		if !d.enabled[kind] {
			continue
		}
		candidates = append(candidates, d.match(kind, text)...)
	}

	resolved := Resolve(candidates)

	if len(resolved) > 0 {
		d.logger.Debug("Detection pass complete",
			zap.Int("candidates", len(candidates)),
			zap.Int("resolved", len(resolved)),
		)
	}

	return resolved
}

// Enabled reports whether a kind is active
func (d *Detector) Enabled(kind Kind) bool {
	return d.enabled[kind]
}

func (d *Detector) match(kind Kind, text string) []Span {
	switch kind {
	case Email:
		return regexSpans(text, emailRe, Email)
	case IPv4:
		return regexSpans(text, ipv4Re, IPv4)
	case IPv6:
		return ipv6Spans(text)
	case UUID:
		return regexSpans(text, uuidRe, UUID)
	case JWT:
		return regexSpans(text, jwtRe, JWT)
	case Token:
		return d.tokenSpans(text)
	}
	return nil
}

func regexSpans(text string, re *regexp.Regexp, kind Kind) []Span {
	var spans []Span
	for _, loc := range re.FindAllStringIndex(text, -1) {
		spans = append(spans, Span{
			Start: loc[0],
			End:   loc[1],
			Text:  text[loc[0]:loc[1]],
			Kind:  kind,
		})
	}
	return spans
}

// tokenSpans applies the high-entropy heuristic: a maximal alphanumeric run
// qualifies when it is long enough, its Shannon entropy clears the threshold,
// and it is not an allow-listed word.
func (d *Detector) tokenSpans(text string) []Span {
	var spans []Span
	for _, loc := range d.tokenRe.FindAllStringIndex(text, -1) {
		run := text[loc[0]:loc[1]]
		if _, ok := d.allowlist[strings.ToLower(run)]; ok {
			continue
		}
		if ShannonEntropy(run) < d.threshold {
			continue
		}
		spans = append(spans, Span{Start: loc[0], End: loc[1], Text: run, Kind: Token})
	}
	return spans
}

func ipv6Spans(text string) []Span {
	var spans []Span
	for _, loc := range ipv6RunRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		s := text[start:end]
		if strings.Count(s, ":") < 2 {
			continue
		}

		// Runs can pick up a colon from surrounding prose ("see ::1: it",
		// "host:2001:db8::1"). Shave unparsable edges, trailing side first so
		// the "::" of a compressed address at run start survives.
		for len(s) > 2 && parseIPv6(s) == nil && s[len(s)-1] == ':' {
			s = s[:len(s)-1]
			end--
		}
		for len(s) > 2 && parseIPv6(s) == nil && s[0] == ':' {
			s = s[1:]
			start++
		}

		if parseIPv6(s) == nil {
			continue
		}
		spans = append(spans, Span{Start: start, End: end, Text: s, Kind: IPv6})
	}
	return spans
}

func parseIPv6(s string) net.IP {
	if !strings.Contains(s, ":") {
		return nil
	}
	return net.ParseIP(s)
}

// ShannonEntropy returns bits per character over the byte distribution of s
func ShannonEntropy(s string) float64 {
	if len(s) == 0 {
		return 0
	}

	var counts [256]int
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}

	length := float64(len(s))
	var entropy float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / length
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func (d *Detector) countEnabled() int {
	count := 0
	for _, on := range d.enabled {
		if on {
			count++
		}
	}
	return count
}
