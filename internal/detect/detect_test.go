package detect

import (
	"strings"
	"testing"

	"github.com/clipscrub/clipscrub/internal/config"
	"github.com/clipscrub/clipscrub/internal/logger"
)

func newTestDetector(t *testing.T, cfg config.RedactionConfig) *Detector {
	t.Helper()
	d, err := New(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("Failed to create detector: %v", err)
	}
	return d
}

func defaultDetector(t *testing.T) *Detector {
	t.Helper()
	return newTestDetector(t, config.GetDefaults().Redaction)
}

func kindsOf(spans []Span) []Kind {
	kinds := make([]Kind, len(spans))
	for i, s := range spans {
		kinds[i] = s.Kind
	}
	return kinds
}

func TestDetectStructural(t *testing.T) {
	d := defaultDetector(t)

	t.Run("Email", func(t *testing.T) {
		spans := d.Detect("email me at a.b+test@example.com")
		if len(spans) != 1 || spans[0].Kind != Email {
			t.Fatalf("Expected one email span, got %v", spans)
		}
		if spans[0].Text != "a.b+test@example.com" {
			t.Errorf("Unexpected match text: %q", spans[0].Text)
		}
	})

	t.Run("IPv4", func(t *testing.T) {
		spans := d.Detect("server 192.168.0.1 up")
		if len(spans) != 1 || spans[0].Kind != IPv4 {
			t.Fatalf("Expected one ipv4 span, got %v", spans)
		}
	})

	t.Run("IPv4OctetBounds", func(t *testing.T) {
		spans := d.Detect("not an ip: 999.999.999.999")
		for _, s := range spans {
			if s.Kind == IPv4 {
				t.Errorf("Out-of-range octets matched as ipv4: %q", s.Text)
			}
		}
	})

	t.Run("UUIDv4", func(t *testing.T) {
		spans := d.Detect("id 123e4567-e89b-42d3-a456-556642440000")
		if len(spans) != 1 || spans[0].Kind != UUID {
			t.Fatalf("Expected one uuid span, got %v", spans)
		}
	})

	t.Run("JWT", func(t *testing.T) {
		spans := d.Detect("token aaaa.bbbb.cccc")
		if len(spans) != 1 || spans[0].Kind != JWT {
			t.Fatalf("Expected one jwt span, got %v", spans)
		}
	})
}

func TestDetectIPv6(t *testing.T) {
	d := defaultDetector(t)

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"Full", "addr 2001:0db8:85a3:0000:0000:8a2e:0370:7334 end", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{"Compressed", "ping 2001:db8::1 now", "2001:db8::1"},
		{"LinkLocal", "iface fe80::1 up", "fe80::1"},
		{"TrailingColonFromProse", "see 2001:db8::1: it responds", "2001:db8::1"},
		{"CompressedAtRunStart", "see ::1: it responds", "::1"},
		{"LeadingColonFromProse", "host:2001:db8::1", "2001:db8::1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spans := d.Detect(tc.input)
			if len(spans) != 1 || spans[0].Kind != IPv6 {
				t.Fatalf("Expected one ipv6 span, got %v", spans)
			}
			if spans[0].Text != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, spans[0].Text)
			}
		})
	}

	t.Run("RejectsTimeOfDay", func(t *testing.T) {
		if spans := d.Detect("meeting at 12:30:45 sharp"); len(spans) != 0 {
			t.Errorf("Time of day matched as ipv6: %v", spans)
		}
	})

	t.Run("RejectsMACAddress", func(t *testing.T) {
		for _, s := range d.Detect("nic aa:bb:cc:dd:ee:ff down") {
			if s.Kind == IPv6 {
				t.Errorf("MAC address matched as ipv6: %q", s.Text)
			}
		}
	})
}

func TestDetectToken(t *testing.T) {
	d := defaultDetector(t)

	t.Run("HighEntropy", func(t *testing.T) {
		spans := d.Detect("key AbCDeF0123456789AbCDeF0123456789 set")
		if len(spans) != 1 || spans[0].Kind != Token {
			t.Fatalf("Expected one token span, got %v", spans)
		}
	})

	t.Run("LowEntropyRepetitive", func(t *testing.T) {
		if spans := d.Detect(strings.Repeat("a", 40)); len(spans) != 0 {
			t.Errorf("Repetitive run matched as token: %v", spans)
		}
	})

	t.Run("TooShort", func(t *testing.T) {
		if spans := d.Detect("key AbCd1234 set"); len(spans) != 0 {
			t.Errorf("Short run matched as token: %v", spans)
		}
	})

	t.Run("AllowlistExcludes", func(t *testing.T) {
		// Mixed enough to clear the entropy threshold, but allow-listed.
		if got := ShannonEntropy("abcdefghijklmnopqrstuvwxyz0123456789"); got < 3.5 {
			t.Fatalf("Test premise broken: allowlisted word entropy %f below threshold", got)
		}
		if spans := d.Detect("alphabet abcdefghijklmnopqrstuvwxyz0123456789 here"); len(spans) != 0 {
			t.Errorf("Allowlisted word matched: %v", spans)
		}
	})

	t.Run("AllowlistIsCaseInsensitive", func(t *testing.T) {
		if spans := d.Detect("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"); len(spans) != 0 {
			t.Errorf("Uppercased allowlisted word matched: %v", spans)
		}
	})
}

func TestShannonEntropy(t *testing.T) {
	if got := ShannonEntropy(""); got != 0 {
		t.Errorf("Entropy of empty string: %f", got)
	}
	if got := ShannonEntropy(strings.Repeat("a", 32)); got != 0 {
		t.Errorf("Entropy of uniform string: %f", got)
	}
	if got := ShannonEntropy("AbCDeF0123456789AbCDeF0123456789"); got < 3.5 {
		t.Errorf("Entropy of mixed token too low: %f", got)
	}
}

func TestDetectIsTotal(t *testing.T) {
	d := defaultDetector(t)

	inputs := []string{
		"",
		"\x00\x01\x02\xff\xfe",
		strings.Repeat("\xf0\x28\x8c\x28", 100), // invalid UTF-8
		"plain text with nothing sensitive",
	}

	for _, input := range inputs {
		spans := d.Detect(input)
		for _, s := range spans {
			if s.Start < 0 || s.End > len(input) || s.Start >= s.End {
				t.Errorf("Span out of bounds for input %q: %+v", input, s)
			}
		}
	}
}

func TestConfigureDetectors(t *testing.T) {
	t.Run("SubsetOnly", func(t *testing.T) {
		cfg := config.GetDefaults().Redaction
		cfg.Detectors = []string{"email"}
		d := newTestDetector(t, cfg)

		spans := d.Detect("a@b.com from 10.0.0.5")
		if len(spans) != 1 || spans[0].Kind != Email {
			t.Fatalf("Expected only email detection, got %v", spans)
		}
	})

	t.Run("UnknownName", func(t *testing.T) {
		cfg := config.GetDefaults().Redaction
		cfg.Detectors = []string{"ssn"}
		if _, err := New(cfg, logger.Nop()); err == nil {
			t.Fatal("Expected error for unknown detector name")
		}
	})

	t.Run("AllWildcard", func(t *testing.T) {
		d := defaultDetector(t)
		for _, k := range Kinds {
			if !d.Enabled(k) {
				t.Errorf("Kind %s not enabled by \"all\"", k)
			}
		}
	})
}

func TestDeterminism(t *testing.T) {
	d := defaultDetector(t)
	input := "a@b.com 10.0.0.5 2001:db8::1 123e4567-e89b-42d3-a456-556642440000 aaaa.bbbb.cccc AbCDeF0123456789AbCDeF0123456789"

	first := d.Detect(input)
	for i := 0; i < 10; i++ {
		again := d.Detect(input)
		if len(again) != len(first) {
			t.Fatalf("Run %d: %d spans, expected %d", i, len(again), len(first))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("Run %d span %d differs: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}
