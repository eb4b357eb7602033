package config

// GetDefaults returns the default configuration values keyed by config key.
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for path, schema := range KnownKeys {
		defaults[path] = schema.Default
	}
	return defaults
}

// Defaults returns the snapshot used when nothing else is configured.
func Defaults() Snapshot {
	return Snapshot{
		Enabled:            true,
		Volume:             100,
		Cooldown:           1500,
		OnDiagnosticErrors: true,
		OnTaskErrors:       true,
		OnTerminalErrors:   true,
		SoundFile:          "",
		DrainTimeout:       10000,
		Desktop:            false,
	}
}
