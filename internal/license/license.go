package license

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fileHeader is the first line of every license file
const fileHeader = "CLIPSCRUB-LICENSE-1"

// Status is the outcome of license verification
type Status int

const (
	// StatusNoLicense means no license file exists; free mode, not an error.
	StatusNoLicense Status = iota
	// StatusValid means the signature, device binding and expiry all check out.
	StatusValid
	// StatusInvalid means a license file is present but failed verification.
	StatusInvalid
	// StatusDevOverride is reachable only in builds with the devlicense tag.
	StatusDevOverride
)

func (s Status) String() string {
	switch s {
	case StatusNoLicense:
		return "no-license"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusDevOverride:
		return "dev-override"
	}
	return "unknown"
}

// Reason explains why a present license was rejected
type Reason int

const (
	ReasonNone Reason = iota
	ReasonParse
	ReasonSignatureInvalid
	ReasonDeviceMismatch
	ReasonExpired
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonParse:
		return "parse-error"
	case ReasonSignatureInvalid:
		return "signature-invalid"
	case ReasonDeviceMismatch:
		return "device-mismatch"
	case ReasonExpired:
		return "expired"
	}
	return "unknown"
}

// Info holds the signed license fields. No field is exposed to callers before
// the signature verifies over the payload bytes.
type Info struct {
	Email    string
	Plan     string
	DeviceID string
	IssuedAt time.Time
	Expires  *time.Time
}

// Verification is the immutable result consumed by the feature gate
type Verification struct {
	Status Status
	Reason Reason
	Info   *Info
	Detail string
}

func invalid(reason Reason, detail string) Verification {
	return Verification{Status: StatusInvalid, Reason: reason, Detail: detail}
}

// DefaultPath returns the per-user license file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "clipscrub", "license.key")
}

// Check resolves the license file, verifies it against the embedded public
// key and the current device, and returns the outcome. Every failure path
// degrades to free mode; Check never aborts the caller.
func Check(path string, now time.Time) Verification {
	if info, ok := devOverride(); ok {
		return Verification{Status: StatusDevOverride, Info: info, Detail: "development override active"}
	}

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return Verification{Status: StatusNoLicense}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Verification{Status: StatusNoLicense}
	}

	pub, err := EmbeddedPublicKey()
	if err != nil {
		return invalid(ReasonSignatureInvalid, err.Error())
	}

	return Verify(string(content), pub, CurrentDeviceID(), now)
}

// Verify checks a license file body against a public key and device id.
// It is pure: same inputs, same outcome.
func Verify(content string, publicKey ed25519.PublicKey, deviceID string, now time.Time) Verification {
	payload, sig, err := splitFile(content)
	if err != nil {
		return invalid(ReasonParse, err.Error())
	}

	if len(publicKey) != ed25519.PublicKeySize {
		return invalid(ReasonSignatureInvalid, "invalid public key length")
	}
	if len(sig) != ed25519.SignatureSize || !ed25519.Verify(publicKey, payload, sig) {
		return invalid(ReasonSignatureInvalid, "license signature check failed")
	}

	// Signature holds over the payload bytes; fields are trustworthy now.
	info, err := parsePayload(payload)
	if err != nil {
		return invalid(ReasonParse, err.Error())
	}

	if info.DeviceID != deviceID {
		return invalid(ReasonDeviceMismatch, "license is not valid for this device")
	}

	if info.Expires != nil && now.After(*info.Expires) {
		return invalid(ReasonExpired, fmt.Sprintf("license expired on %s", info.Expires.Format(time.RFC3339)))
	}

	return Verification{Status: StatusValid, Info: info}
}

// splitFile extracts the decoded payload and signature bytes from the
// three-line license format.
func splitFile(content string) (payload, sig []byte, err error) {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 3 {
		return nil, nil, fmt.Errorf("invalid license file: expected header, payload and signature lines")
	}
	if lines[0] != fileHeader {
		return nil, nil, fmt.Errorf("invalid license file header")
	}

	payloadB64, ok := strings.CutPrefix(lines[1], "payload:")
	if !ok {
		return nil, nil, fmt.Errorf("invalid license file: missing payload prefix")
	}
	sigB64, ok := strings.CutPrefix(lines[2], "signature:")
	if !ok {
		return nil, nil, fmt.Errorf("invalid license file: missing signature prefix")
	}

	payload, err = base64.StdEncoding.DecodeString(payloadB64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid license payload encoding: %w", err)
	}
	sig, err = base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid license signature encoding: %w", err)
	}

	return payload, sig, nil
}

// parsePayload decodes the canonical key=value payload. email, plan,
// device_id and issued_at are required; expires is optional.
func parsePayload(payload []byte) (*Info, error) {
	fields := make(map[string]string)
	for _, line := range strings.Split(string(payload), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid license payload line: %q", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		fields[key] = value
	}

	for _, required := range []string{"email", "plan", "device_id", "issued_at"} {
		if fields[required] == "" {
			return nil, fmt.Errorf("license payload missing required field %q", required)
		}
	}

	issuedAt, err := parseTime(fields["issued_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid issued_at: %w", err)
	}

	info := &Info{
		Email:    fields["email"],
		Plan:     fields["plan"],
		DeviceID: fields["device_id"],
		IssuedAt: issuedAt,
	}

	if v := fields["expires"]; v != "" {
		expires, err := parseTime(v)
		if err != nil {
			return nil, fmt.Errorf("invalid expires: %w", err)
		}
		info.Expires = &expires
	}

	return info, nil
}

func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
