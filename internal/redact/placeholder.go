package redact

import (
	"fmt"
	"strings"

	"github.com/clipscrub/clipscrub/internal/detect"
)

// Placeholder labels. None of these can satisfy a detector pattern, which is
// what makes redaction idempotent.
var kindLabels = map[detect.Kind]string{
	detect.Email: "EMAIL",
	detect.IPv4:  "IP",
	detect.IPv6:  "IPV6",
	detect.UUID:  "UUID",
	detect.JWT:   "JWT",
	detect.Token: "TOKEN",
}

// allocator hands out placeholder text for a matched span
type allocator interface {
	placeholder(kind detect.Kind, value string) string
}

func newAllocator(stable bool) allocator {
	if stable {
		return &stableAllocator{
			indices: make(map[detect.Kind]map[string]int),
			next:    make(map[detect.Kind]int),
		}
	}
	return ephemeralAllocator{}
}

// ephemeralAllocator is the free tier: one generic label per kind, no value
// tracking.
type ephemeralAllocator struct{}

func (ephemeralAllocator) placeholder(kind detect.Kind, _ string) string {
	return "<" + kindLabels[kind] + ">"
}

// stableAllocator numbers placeholders by first appearance of the normalized
// value, so identical values share an index within one invocation. The
// mapping lives only as long as the allocator.
type stableAllocator struct {
	indices map[detect.Kind]map[string]int
	next    map[detect.Kind]int
}

func (a *stableAllocator) placeholder(kind detect.Kind, value string) string {
	byValue := a.indices[kind]
	if byValue == nil {
		byValue = make(map[string]int)
		a.indices[kind] = byValue
	}

	key := normalize(kind, value)
	index, ok := byValue[key]
	if !ok {
		a.next[kind]++
		index = a.next[kind]
		byValue[key] = index
	}

	return fmt.Sprintf("<%s_%d>", kindLabels[kind], index)
}

// normalize produces the stable-mode identity key for a matched value.
// E-mail addresses compare case-insensitively; everything else is verbatim.
func normalize(kind detect.Kind, value string) string {
	if kind == detect.Email {
		return strings.ToLower(value)
	}
	return value
}
