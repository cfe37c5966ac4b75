package feature

import (
	"strings"

	"github.com/clipscrub/clipscrub/internal/license"
)

// Set is a bitset of paid entitlements. Free behavior needs no bit: the zero
// Set is the free tier. A Set is built once at startup and never mutated.
type Set uint8

const (
	// StablePlaceholders enables value-consistent numbered placeholders.
	StablePlaceholders Set = 1 << iota
	// StructuredReport enables json/yaml report output.
	StructuredReport
	// ConfigRules enables config-file-driven rule customization.
	ConfigRules
	// FileInput enables --file and --stdin input modes.
	FileInput
)

// AllPaid is every paid entitlement
const AllPaid = StablePlaceholders | StructuredReport | ConfigRules | FileInput

// FromVerification maps a license verification outcome to an entitlement set.
// Paid bits are granted only for a valid license or the development override;
// every other outcome yields the free tier.
func FromVerification(v license.Verification) Set {
	switch v.Status {
	case license.StatusValid, license.StatusDevOverride:
		return AllPaid
	default:
		return 0
	}
}

// Has reports whether every bit in f is enabled
func (s Set) Has(f Set) bool {
	return s&f == f
}

// String lists enabled entitlements for display
func (s Set) String() string {
	if s == 0 {
		return "free"
	}

	labels := []struct {
		bit  Set
		name string
	}{
		{StablePlaceholders, "stable-placeholders"},
		{StructuredReport, "structured-report"},
		{ConfigRules, "config-rules"},
		{FileInput, "file-input"},
	}

	var names []string
	for _, l := range labels {
		if s.Has(l.bit) {
			names = append(names, l.name)
		}
	}
	return strings.Join(names, ",")
}
