//go:build !devlicense

package license

// devOverride is a no-op outside devlicense builds.
func devOverride() (*Info, bool) {
	return nil, false
}
