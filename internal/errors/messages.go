package errors

import (
	"fmt"
	"strings"
)

// MissingCommand is returned by exec without a command.
func MissingCommand() *CLIError {
	return NewArgumentErrorWithUsage(
		"no command to run",
		"errbell exec [--task] -- <command> [args...]",
		"Put the command after --, for example: errbell exec -- go test ./...",
	)
}

// CommandNotFound is returned when exec cannot find the executable.
func CommandNotFound(name string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("command not found: %s", name),
		"Check the spelling of the command",
		"Make sure it is installed and on your PATH",
	)
}

// ConfigFileNotFound is returned when an explicit --config path is missing.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Check the path passed to --config",
		`Create the file with a JSON object, for example: {"volume": 80}`,
	)
}

// ConfigParseError is returned when a config file cannot be read.
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to read config %s: %v", path, err),
		Remediation: []string{
			"Config files are JSON objects; check for trailing commas and quoting",
			"Run 'errbell config keys' to list the accepted keys",
		},
		Err: err,
	}
}

// InvalidAssignment is returned for a malformed or invalid --set value.
func InvalidAssignment(assignment string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("invalid setting %q: %v", assignment, err),
		Usage:    "--set key=value",
		Remediation: []string{
			"Run 'errbell config keys' to list keys and their types",
		},
		Err: err,
	}
}

// UnknownConfigKey is returned for a key errbell does not know.
func UnknownConfigKey(key string, known []string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("unknown config key: %s", key),
		fmt.Sprintf("Valid keys: %s", strings.Join(known, ", ")),
	)
}

// InvalidFlagCombination is returned when flags conflict.
func InvalidFlagCombination(flags, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination %s: %s", flags, reason),
		"Run the command with --help to see valid flags",
	)
}

// SoundFileNotFound is returned by doctor when no alert sound resolves.
func SoundFileNotFound(path string, err error) *CLIError {
	msg := "alert sound not found"
	if path != "" {
		msg = fmt.Sprintf("alert sound not found: %s", path)
	}
	return &CLIError{
		Category: Prerequisite,
		Message:  msg,
		Remediation: []string{
			"Set sound_file to an existing .wav, .mp3, .ogg or .aiff file",
			"Or leave it empty to use the system sound",
		},
		Err: err,
	}
}

// NoAudioPlayer is returned by doctor when the platform player is missing.
func NoAudioPlayer(platform, tools string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no audio player found on %s (looked for %s)", platform, tools),
		"Install one of the listed tools; until then errbell falls back to a plain beep",
	)
}

// HostBridgeError is returned when the host event stream fails.
func HostBridgeError(err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("host event stream failed: %v", err),
		Remediation: []string{
			"Send one JSON object per line on stdin",
			"Restart 'errbell watch' from the editor",
		},
		Err: err,
	}
}
