package license

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
)

// CurrentDeviceID derives an opaque, stable identifier for this machine: a
// lowercase hex SHA-256 over OS installation and identity signals. Every
// signal has a fixed fallback, so derivation is total and deterministic on a
// given machine.
func CurrentDeviceID() string {
	machineID := readFirstExisting("/etc/machine-id", "/var/lib/dbus/machine-id")
	if machineID == "" {
		machineID = "no-machine-id"
	}

	hostname := readFirstExisting("/etc/hostname")
	if hostname == "" {
		if h, err := os.Hostname(); err == nil {
			hostname = h
		}
	}
	if hostname == "" {
		hostname = "unknown-host"
	}

	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}
	if user == "" {
		user = "unknown-user"
	}

	return fingerprint(machineID, hostname, user)
}

func fingerprint(signals ...string) string {
	for i, s := range signals {
		signals[i] = strings.TrimSpace(s)
	}
	sum := sha256.Sum256([]byte(strings.Join(signals, "|")))
	return hex.EncodeToString(sum[:])
}

func readFirstExisting(paths ...string) string {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			return v
		}
	}
	return ""
}
