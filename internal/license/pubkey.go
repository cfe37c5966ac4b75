package license

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
)

// embeddedPublicKeyB64 is baked into release binaries at build time:
//
//	go build -ldflags "-X github.com/clipscrub/clipscrub/internal/license.embeddedPublicKeyB64=<base64>"
//
// The signing keypair lives with the separate license-minting service; this
// tool only ever verifies.
var embeddedPublicKeyB64 = ""

// EmbeddedPublicKey decodes the build-time public key
func EmbeddedPublicKey() (ed25519.PublicKey, error) {
	if embeddedPublicKeyB64 == "" {
		return nil, errors.New("public key not configured; build with -ldflags -X to embed one")
	}

	raw, err := base64.StdEncoding.DecodeString(embeddedPublicKeyB64)
	if err != nil {
		return nil, fmt.Errorf("invalid public key encoding: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key length: %d", len(raw))
	}

	return ed25519.PublicKey(raw), nil
}
