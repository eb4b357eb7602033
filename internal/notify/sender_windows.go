//go:build windows

package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// windowsSender implements Sender for Windows using PowerShell
type windowsSender struct {
	available bool
	fallback  fallbackSender
}

// newPlatformSender creates a new Windows notification sender
func newPlatformSender() Sender {
	return &windowsSender{
		available: toolAvailable("powershell"),
	}
}

func playerTools() []string {
	return []string{"powershell"}
}

func defaultSoundCandidates() []string {
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	return []string{
		filepath.Join(root, "Media", "Windows Critical Stop.wav"),
		filepath.Join(root, "Media", "Windows Error.wav"),
	}
}

// SendVisual sends a toast notification using PowerShell
func (s *windowsSender) SendVisual(n Notification) error {
	if !s.available {
		return s.fallback.SendVisual(n)
	}

	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$textNodes = $template.GetElementsByTagName('text')
$textNodes.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$textNodes.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('errbell').Show($toast)
`, escapeForPowerShell(n.Title), escapeForPowerShell(n.Message))

	cmd := exec.Command("powershell", "-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script)
	return cmd.Run()
}

// PlaySound plays a sound using the WPF MediaPlayer, which supports volume
// and compressed formats.
func (s *windowsSender) PlaySound(ctx context.Context, soundFile string, volume int) error {
	if volume <= 0 {
		return nil
	}
	if !s.available {
		return s.fallback.PlaySound(ctx, soundFile, volume)
	}

	script := fmt.Sprintf(`
Add-Type -AssemblyName PresentationCore
$player = New-Object System.Windows.Media.MediaPlayer
$player.Open([uri]'%s')
$player.Volume = %.2f
$player.Play()
$waited = 0
while (-not $player.NaturalDuration.HasTimeSpan -and $waited -lt 2000) { Start-Sleep -Milliseconds 50; $waited += 50 }
if ($player.NaturalDuration.HasTimeSpan) { Start-Sleep -Milliseconds $player.NaturalDuration.TimeSpan.TotalMilliseconds }
$player.Close()
`, escapeForPowerShell(soundFile), float64(volume)/100)

	cmd := exec.CommandContext(ctx, "powershell", "-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script)
	return cmd.Run()
}

// VisualAvailable returns true if PowerShell is available
func (s *windowsSender) VisualAvailable() bool {
	return s.available
}

// SoundAvailable returns true if PowerShell is available
func (s *windowsSender) SoundAvailable() bool {
	return s.available
}

// escapeForPowerShell escapes special characters for single-quoted PowerShell strings
func escapeForPowerShell(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\'':
			b.WriteString("''")
		case '`', '$':
			b.WriteRune('`')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
