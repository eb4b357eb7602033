package notify

import "github.com/ariel-frischer/errbell/internal/detect"

// NotificationType selects the urgency a desktop notification is shown with.
type NotificationType string

// TypeFailure is shown with critical urgency where the platform supports it.
const TypeFailure NotificationType = "failure"

// Notification is one desktop popup.
type Notification struct {
	Title            string
	Message          string
	NotificationType NotificationType
}

// AlertFor builds the desktop popup shown alongside the alert sound.
func AlertFor(source detect.Source) Notification {
	return Notification{
		Title:            "errbell",
		Message:          describe(source),
		NotificationType: TypeFailure,
	}
}

func describe(source detect.Source) string {
	switch source {
	case detect.SourceDiagnostic:
		return "New errors in the workspace diagnostics"
	case detect.SourceTask:
		return "A task exited with an error"
	case detect.SourceTerminalExit:
		return "A terminal command failed"
	case detect.SourceTerminalOutput:
		return "A terminal command printed an error"
	default:
		return "Error detected"
	}
}
