package config

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateFile checks a JSON config file. A missing or empty file is valid.
// Unknown keys are reported as warnings; they are ignored at load time.
// The first syntax, type or range problem is returned as a ValidationError.
func ValidateFile(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		if os.IsPermission(err) {
			return nil, &ValidationError{FilePath: filePath, Message: "permission denied"}
		}
		return nil, &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return ValidateBytes(data, filePath)
}

// ValidateBytes is ValidateFile for data already in memory.
func ValidateBytes(data []byte, filePath string) ([]string, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var raw map[string]any
	if err := stdjson.Unmarshal(data, &raw); err != nil {
		var syntaxErr *stdjson.SyntaxError
		if errors.As(err, &syntaxErr) {
			line, column := lineColumn(data, max(syntaxErr.Offset-1, 0))
			return nil, &ValidationError{FilePath: filePath, Line: line, Column: column, Message: syntaxErr.Error()}
		}
		var typeErr *stdjson.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ValidationError{FilePath: filePath, Message: "top level must be a JSON object"}
		}
		return nil, &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	entries := flattenNamespace(raw)
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []string
	k := koanf.New(".")
	for _, key := range keys {
		path, ok := NormalizeKey(key)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key %q is ignored", key))
			continue
		}
		value := entries[key]
		if err := checkType(KnownKeys[path].Type, value); err != nil {
			return warnings, &ValidationError{FilePath: filePath, Field: path, Message: err.Error()}
		}
		k.Set(path, value)
	}

	snap := Defaults()
	if err := k.Unmarshal("", &snap); err != nil {
		return warnings, &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	if err := newValidator().Struct(snap); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return warnings, &ValidationError{
				FilePath: filePath,
				Field:    fe.Field(),
				Message:  fmt.Sprintf("value %v violates %s=%s", fe.Value(), fe.Tag(), fe.Param()),
			}
		}
		return warnings, &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return warnings, nil
}

// flattenNamespace lifts the keys of a nested "errbell" object to
// "errbell.<key>" so settings copied from the editor validate as-is.
func flattenNamespace(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		nested, ok := value.(map[string]any)
		if key != "errbell" || !ok {
			out[key] = value
			continue
		}
		for inner, v := range nested {
			out["errbell."+inner] = v
		}
	}
	return out
}

func checkType(want ConfigValueType, value any) error {
	switch want {
	case TypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("must be true or false, got %v", value)
		}
	case TypeInt:
		f, ok := value.(float64)
		if !ok || f != math.Trunc(f) {
			return fmt.Errorf("must be an integer, got %v", value)
		}
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("must be a string, got %v", value)
		}
	}
	return nil
}

// lineColumn returns the 1-based line and column of the byte at offset.
func lineColumn(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, column = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
