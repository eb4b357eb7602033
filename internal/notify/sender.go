package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gen2brain/beeep"
)

// Sender defines the interface for platform-specific notification senders
type Sender interface {
	// SendVisual sends a visual notification to the OS notification system
	SendVisual(n Notification) error

	// PlaySound plays soundFile at volume (0-100) and returns when playback
	// has finished or ctx is done.
	PlaySound(ctx context.Context, soundFile string, volume int) error

	// VisualAvailable returns true if native visual notifications are supported
	VisualAvailable() bool

	// SoundAvailable returns true if a native audio player is available
	SoundAvailable() bool
}

// NewSender creates a platform-specific notification sender based on the current OS.
// On platforms without native support it returns a beeep-backed sender.
func NewSender() Sender {
	return newPlatformSender()
}

// Platform returns the current operating system name
func Platform() string {
	return runtime.GOOS
}

// PlayerTools lists the audio players this platform's sender looks for, in
// order of preference. It is empty where only the beep fallback exists.
func PlayerTools() []string {
	return playerTools()
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// fallbackSender uses beeep: a plain beep instead of the sound file and a
// dbus/toast notification for visuals.
type fallbackSender struct{}

func (fallbackSender) SendVisual(n Notification) error {
	return beeep.Notify(n.Title, n.Message, "")
}

func (fallbackSender) PlaySound(_ context.Context, _ string, volume int) error {
	if volume <= 0 {
		return nil
	}
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

func (fallbackSender) VisualAvailable() bool { return false }
func (fallbackSender) SoundAvailable() bool  { return false }

// supportedAudioExtensions contains file extensions supported for alert sounds
var supportedAudioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".aiff": true,
	".aif":  true,
	".ogg":  true,
	".oga":  true,
	".flac": true,
	".m4a":  true,
}

// ErrSoundNotFound is returned when the alert sound file does not exist.
var ErrSoundNotFound = errors.New("alert sound file not found")

// ValidateSoundFile checks that soundFile exists, is a regular file and has a
// supported audio extension.
func ValidateSoundFile(soundFile string) error {
	if soundFile == "" {
		return fmt.Errorf("%w: no path configured", ErrSoundNotFound)
	}

	info, err := os.Stat(soundFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSoundNotFound, soundFile)
		}
		return fmt.Errorf("cannot access sound file %s: %w", soundFile, err)
	}

	if info.IsDir() {
		return fmt.Errorf("sound path is a directory, not a file: %s", soundFile)
	}

	ext := strings.ToLower(filepath.Ext(soundFile))
	if !supportedAudioExtensions[ext] {
		return fmt.Errorf("unsupported audio format '%s' for file: %s", ext, soundFile)
	}

	return nil
}

// DefaultSoundFile returns the first platform sound that exists, or the
// preferred candidate when none do (so a missing-asset warning can name it).
func DefaultSoundFile() string {
	candidates := defaultSoundCandidates()
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

// ResolveSound returns the validated sound file for soundFile, expanding a
// leading "~/" and falling back to the platform default when empty.
func ResolveSound(soundFile string) (string, error) {
	path := soundFile
	if path == "" {
		path = DefaultSoundFile()
	}
	path = expandHomePath(path)
	if err := ValidateSoundFile(path); err != nil {
		return "", err
	}
	return path, nil
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
