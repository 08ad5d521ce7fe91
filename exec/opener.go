// Package exec opens URLs and local artifacts in the system browser.
package exec

import (
	"context"
	"os/exec"
	"runtime"

	officeqc "github.com/johnChow-tech/office-files-quality-check"
)

// Ensure Opener implements officeqc.LinkSink at compile time.
var _ officeqc.LinkSink = (*Opener)(nil)

// Opener hands targets to the platform's default browser. Opens are
// fire-and-forget: the browser process is started, never waited on, and
// its outcome is not consulted.
type Opener struct{}

// NewOpener creates an Opener for the current platform.
func NewOpener() *Opener {
	return &Opener{}
}

// Open starts the platform browser command for a target.
func (o *Opener) Open(ctx context.Context, target string) error {
	name, args := openCommand(runtime.GOOS, target)
	if err := exec.CommandContext(ctx, name, args...).Start(); err != nil {
		return officeqc.Errorf(officeqc.EINTERNAL, "open %s: %v", target, err)
	}
	return nil
}

// openCommand returns the browser launch command for a platform.
func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
