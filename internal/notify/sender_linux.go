//go:build linux

package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// linuxSender implements Sender for Linux using notify-send and paplay/pw-play
type linuxSender struct {
	visualAvailable bool
	player          string
	fallback        fallbackSender
}

// newPlatformSender creates a new Linux notification sender
func newPlatformSender() Sender {
	s := &linuxSender{
		visualAvailable: toolAvailable("notify-send") && hasDisplay(),
	}
	for _, p := range playerTools() {
		if toolAvailable(p) {
			s.player = p
			break
		}
	}
	return s
}

func playerTools() []string {
	return []string{"paplay", "pw-play"}
}

func defaultSoundCandidates() []string {
	return []string{
		"/usr/share/sounds/freedesktop/stereo/dialog-error.oga",
		"/usr/share/sounds/freedesktop/stereo/bell.oga",
	}
}

// hasDisplay checks if a display environment is available
func hasDisplay() bool {
	if os.Getenv("DISPLAY") != "" {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// SendVisual sends a visual notification using notify-send
func (s *linuxSender) SendVisual(n Notification) error {
	if !s.visualAvailable {
		return s.fallback.SendVisual(n)
	}

	urgency := "normal"
	if n.NotificationType == TypeFailure {
		urgency = "critical"
	}

	cmd := exec.Command("notify-send", "-u", urgency, "--app-name", "errbell", n.Title, n.Message)
	return cmd.Run()
}

// PlaySound plays a sound using paplay or pw-play
func (s *linuxSender) PlaySound(ctx context.Context, soundFile string, volume int) error {
	if volume <= 0 {
		return nil
	}
	if s.player == "" {
		return s.fallback.PlaySound(ctx, soundFile, volume)
	}

	var cmd *exec.Cmd
	switch s.player {
	case "paplay":
		// paplay volume is linear, 65536 = 100%
		cmd = exec.CommandContext(ctx, "paplay", fmt.Sprintf("--volume=%d", volume*65536/100), soundFile)
	default:
		cmd = exec.CommandContext(ctx, s.player, fmt.Sprintf("--volume=%.2f", float64(volume)/100), soundFile)
	}
	return cmd.Run()
}

// VisualAvailable returns true if notify-send is available and display is present
func (s *linuxSender) VisualAvailable() bool {
	return s.visualAvailable
}

// SoundAvailable returns true if paplay or pw-play is available
func (s *linuxSender) SoundAvailable() bool {
	return s.player != ""
}
