//go:build devlicense

package license

import "os"

// devOverride honors CLIPSCRUB_LICENSE=DEV in development builds so paid
// paths can be exercised without a signed license. This file is compiled only
// under the devlicense build tag; release artifacts contain no code path that
// reaches an entitled state without signature verification.
func devOverride() (*Info, bool) {
	if os.Getenv("CLIPSCRUB_LICENSE") == "DEV" {
		return &Info{Email: "DEV", Plan: "dev"}, true
	}
	return nil, false
}
