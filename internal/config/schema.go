package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Config key (e.g., "on_task_errors")
	HostName    string          // Editor-side setting name (e.g., "onTaskErrors")
	Type        ConfigValueType // Expected value type for validation
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"enabled": {
		Path:        "enabled",
		HostName:    "enabled",
		Type:        TypeBool,
		Description: "Master switch for all error alerts",
		Default:     true,
	},
	"volume": {
		Path:        "volume",
		HostName:    "volume",
		Type:        TypeInt,
		Description: "Playback volume, 0-100",
		Default:     100,
	},
	"cooldown": {
		Path:        "cooldown",
		HostName:    "cooldown",
		Type:        TypeInt,
		Description: "Minimum milliseconds between two alerts",
		Default:     1500,
	},
	"on_diagnostic_errors": {
		Path:        "on_diagnostic_errors",
		HostName:    "onDiagnosticErrors",
		Type:        TypeBool,
		Description: "Alert when the workspace error diagnostic count changes",
		Default:     true,
	},
	"on_task_errors": {
		Path:        "on_task_errors",
		HostName:    "onTaskErrors",
		Type:        TypeBool,
		Description: "Alert when a task process exits with a non-zero code",
		Default:     true,
	},
	"on_terminal_errors": {
		Path:        "on_terminal_errors",
		HostName:    "onTerminalErrors",
		Type:        TypeBool,
		Description: "Alert on failed terminal commands or error output",
		Default:     true,
	},
	"sound_file": {
		Path:        "sound_file",
		HostName:    "soundFile",
		Type:        TypeString,
		Description: "Alert sound file (empty uses the platform default)",
		Default:     "",
	},
	"drain_timeout": {
		Path:        "drain_timeout",
		HostName:    "drainTimeout",
		Type:        TypeInt,
		Description: "Milliseconds to wait for terminal output before classifying (0 waits forever)",
		Default:     10000,
	},
	"desktop": {
		Path:        "desktop",
		HostName:    "desktop",
		Type:        TypeBool,
		Description: "Also show a desktop notification on each alert",
		Default:     false,
	},
}

// hostNames maps editor-side setting names to config keys.
var hostNames = func() map[string]string {
	m := make(map[string]string, len(KnownKeys))
	for path, schema := range KnownKeys {
		m[schema.HostName] = path
	}
	return m
}()

// SortedKeys returns the known config keys in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeKey maps a config key or host setting name to its config key.
// A leading "errbell." namespace is accepted and stripped.
func NormalizeKey(key string) (string, bool) {
	key = strings.TrimPrefix(key, "errbell.")
	if _, ok := KnownKeys[key]; ok {
		return key, true
	}
	if path, ok := hostNames[key]; ok {
		return path, true
	}
	return "", false
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key or host name.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(key string) (ConfigKeySchema, error) {
	path, ok := NormalizeKey(key)
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: key}
	}
	return KnownKeys[path], nil
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Key    string      // Canonical config key
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	parsed, err := validateAgainstSchema(schema, value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("%s: %w", schema.Path, err)
	}
	parsed.Key = schema.Path
	return parsed, nil
}

// CoerceValue converts a value read from a config file, the host or the
// environment to the type key expects. Strings are parsed the same way as
// ValidateValue input. JSON numbers must be integral for integer keys.
func CoerceValue(key string, value any) (any, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok {
		parsed, err := ValidateValue(schema.Path, s)
		if err != nil {
			return nil, err
		}
		return parsed.Parsed, nil
	}

	switch schema.Type {
	case TypeBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case TypeInt:
		switch n := value.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case float64:
			if n == math.Trunc(n) && math.Abs(n) <= math.MaxInt32 {
				return int(n), nil
			}
		}
	}
	return nil, fmt.Errorf("%s: expected %s, got %v", schema.Path, schema.Type, value)
}

// ParseAssignments parses "key=value" pairs into a settings override map.
func ParseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", pair)
		}
		parsed, err := ValidateValue(strings.TrimSpace(key), strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		out[parsed.Key] = parsed.Parsed
	}
	return out, nil
}

func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

func parseIntValue(value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}
