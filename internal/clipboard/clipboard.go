package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Board is the narrow contract the core has with clipboard I/O: it returns
// the current text and accepts text to write. Nothing else is assumed.
type Board interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, text string) error
}

// Backend identifies a platform clipboard utility pair
type Backend int

const (
	BackendPb Backend = iota // pbpaste/pbcopy (macOS)
	BackendWl                // wl-paste/wl-copy (Wayland)
	BackendXclip
	BackendXsel
)

func (b Backend) String() string {
	switch b {
	case BackendPb:
		return "pbpaste"
	case BackendWl:
		return "wl-paste"
	case BackendXclip:
		return "xclip"
	case BackendXsel:
		return "xsel"
	}
	return "unknown"
}

// availability records which utilities exist on PATH
type availability struct {
	pb    bool
	wl    bool
	xclip bool
	xsel  bool
}

// System is the exec-backed clipboard used by the CLI
type System struct {
	backend Backend
}

// NewSystem detects a usable clipboard backend
func NewSystem() (*System, error) {
	wayland := os.Getenv("WAYLAND_DISPLAY") != ""
	x11 := os.Getenv("DISPLAY") != ""

	avail := availability{
		pb:    hasCmd("pbpaste") && hasCmd("pbcopy"),
		wl:    hasCmd("wl-paste") && hasCmd("wl-copy"),
		xclip: hasCmd("xclip"),
		xsel:  hasCmd("xsel"),
	}

	backend, ok := pickBackend(wayland, x11, avail)
	if !ok {
		return nil, fmt.Errorf("no supported clipboard utilities found: install pbpaste/pbcopy (macOS), wl-paste/wl-copy (Wayland), or xclip/xsel (X11)")
	}

	return &System{backend: backend}, nil
}

// Backend returns the detected backend
func (s *System) Backend() Backend {
	return s.backend
}

// Read returns the current clipboard text
func (s *System) Read(ctx context.Context) (string, error) {
	switch s.backend {
	case BackendPb:
		return runRead(ctx, "pbpaste")
	case BackendWl:
		return runRead(ctx, "wl-paste", "--no-newline")
	case BackendXclip:
		text, err := runRead(ctx, "xclip", "-selection", "clipboard", "-o")
		if err != nil {
			// Fall back to the primary selection if the clipboard is empty.
			return runRead(ctx, "xclip", "-selection", "primary", "-o")
		}
		return text, nil
	case BackendXsel:
		text, err := runRead(ctx, "xsel", "--clipboard", "--output")
		if err != nil {
			return runRead(ctx, "xsel", "--primary", "--output")
		}
		return text, nil
	}
	return "", fmt.Errorf("unknown clipboard backend")
}

// Write replaces the clipboard content
func (s *System) Write(ctx context.Context, text string) error {
	switch s.backend {
	case BackendPb:
		return runWrite(ctx, text, "pbcopy")
	case BackendWl:
		return runWrite(ctx, text, "wl-copy")
	case BackendXclip:
		return runWrite(ctx, text, "xclip", "-selection", "clipboard")
	case BackendXsel:
		return runWrite(ctx, text, "xsel", "--clipboard", "--input")
	}
	return fmt.Errorf("unknown clipboard backend")
}

// pickBackend applies the preference order: native macOS tools first, then
// the tool matching the running display server, then anything installed.
func pickBackend(wayland, x11 bool, a availability) (Backend, bool) {
	if a.pb {
		return BackendPb, true
	}
	if wayland && a.wl {
		return BackendWl, true
	}
	if x11 && a.xclip {
		return BackendXclip, true
	}
	if x11 && a.xsel {
		return BackendXsel, true
	}
	if a.wl {
		return BackendWl, true
	}
	if a.xclip {
		return BackendXclip, true
	}
	if a.xsel {
		return BackendXsel, true
	}
	return 0, false
}

func runRead(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("clipboard read failed: %w: %s", err, detail)
		}
		return "", fmt.Errorf("clipboard read failed: %w", err)
	}

	return stdout.String(), nil
}

func runWrite(ctx context.Context, text, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(text)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	return nil
}

func hasCmd(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
