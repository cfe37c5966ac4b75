package feature

import (
	"testing"

	"github.com/clipscrub/clipscrub/internal/license"
)

func TestFromVerification(t *testing.T) {
	cases := []struct {
		name   string
		verify license.Verification
		want   Set
	}{
		{"Valid", license.Verification{Status: license.StatusValid}, AllPaid},
		{"DevOverride", license.Verification{Status: license.StatusDevOverride}, AllPaid},
		{"NoLicense", license.Verification{Status: license.StatusNoLicense}, 0},
		{"InvalidSignature", license.Verification{Status: license.StatusInvalid, Reason: license.ReasonSignatureInvalid}, 0},
		{"InvalidExpired", license.Verification{Status: license.StatusInvalid, Reason: license.ReasonExpired}, 0},
		{"InvalidDeviceMismatch", license.Verification{Status: license.StatusInvalid, Reason: license.ReasonDeviceMismatch}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromVerification(tc.verify); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestHas(t *testing.T) {
	if !AllPaid.Has(StablePlaceholders) {
		t.Error("AllPaid missing StablePlaceholders")
	}
	if !AllPaid.Has(StructuredReport | FileInput) {
		t.Error("AllPaid missing combined bits")
	}

	var free Set
	if free.Has(StablePlaceholders) {
		t.Error("Free set reports a paid entitlement")
	}
}

func TestString(t *testing.T) {
	var free Set
	if free.String() != "free" {
		t.Errorf("Expected \"free\", got %q", free.String())
	}
	if got := (StablePlaceholders | FileInput).String(); got != "stable-placeholders,file-input" {
		t.Errorf("Unexpected listing: %q", got)
	}
}
