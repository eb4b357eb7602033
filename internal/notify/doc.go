// Package notify delivers errbell alerts.
//
// The Dispatcher is the sink behind the gate: it resolves the alert sound,
// plays it through a platform Sender, and raises the visual error state for
// two seconds. Delivery problems never propagate to the caller; a missing
// sound is reported through a Warner and a playback failure is only logged.
//
// # Platform Support
//
//   - macOS: afplay for sound, osascript for desktop notifications
//   - Linux: paplay or pw-play for sound, notify-send for desktop notifications
//   - Windows: PowerShell MediaPlayer for sound and toast notifications
//   - Elsewhere, or when the tools are missing: beeep
//
// # Usage
//
//	d := notify.NewDispatcher(notify.NewSender(), notify.NewConsoleIndicator(os.Stderr), notify.LogWarner{})
//	controller := gate.New(d)
package notify
