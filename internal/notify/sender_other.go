//go:build !linux && !darwin && !windows

package notify

func newPlatformSender() Sender {
	return fallbackSender{}
}

func playerTools() []string {
	return nil
}

func defaultSoundCandidates() []string {
	return nil
}
