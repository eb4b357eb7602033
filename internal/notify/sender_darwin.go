//go:build darwin

package notify

import (
	"context"
	"fmt"
	"os/exec"
)

const (
	// DefaultMacOSSound is the default alert sound on macOS
	DefaultMacOSSound = "/System/Library/Sounds/Basso.aiff"
)

// darwinSender implements Sender for macOS using osascript and afplay
type darwinSender struct {
	visualAvailable bool
	soundAvailable  bool
	fallback        fallbackSender
}

// newPlatformSender creates a new macOS notification sender
func newPlatformSender() Sender {
	return &darwinSender{
		visualAvailable: toolAvailable("osascript"),
		soundAvailable:  toolAvailable("afplay"),
	}
}

func playerTools() []string {
	return []string{"afplay"}
}

func defaultSoundCandidates() []string {
	return []string{DefaultMacOSSound, "/System/Library/Sounds/Glass.aiff"}
}

// SendVisual sends a visual notification using osascript
func (s *darwinSender) SendVisual(n Notification) error {
	if !s.visualAvailable {
		return s.fallback.SendVisual(n)
	}

	script := fmt.Sprintf(`display notification %q with title %q`, n.Message, n.Title)

	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}

// PlaySound plays a sound using afplay
func (s *darwinSender) PlaySound(ctx context.Context, soundFile string, volume int) error {
	if volume <= 0 {
		return nil
	}
	if !s.soundAvailable {
		return s.fallback.PlaySound(ctx, soundFile, volume)
	}

	// afplay -v 1 is the file's own level
	cmd := exec.CommandContext(ctx, "afplay", "-v", fmt.Sprintf("%.2f", float64(volume)/100), soundFile)
	return cmd.Run()
}

// VisualAvailable returns true if osascript is available
func (s *darwinSender) VisualAvailable() bool {
	return s.visualAvailable
}

// SoundAvailable returns true if afplay is available
func (s *darwinSender) SoundAvailable() bool {
	return s.soundAvailable
}
