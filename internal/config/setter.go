package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SetConfigValue sets key to value in the JSON config file at filePath,
// keeping every other key. The key may be a config key or a host name.
// The file and its directory are created if missing.
func SetConfigValue(filePath, key, value string) (ParsedValue, error) {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("validating value: %w", err)
	}

	k, err := loadFileOnly(filePath)
	if err != nil {
		return ParsedValue{}, err
	}
	if err := k.Set(parsed.Key, parsed.Parsed); err != nil {
		return ParsedValue{}, fmt.Errorf("setting %s: %w", parsed.Key, err)
	}
	if err := checkRanges(k); err != nil {
		return ParsedValue{}, err
	}
	return parsed, writeKoanf(filePath, k)
}

// UnsetConfigValue removes key from the JSON config file at filePath so the
// lower layers apply again. A missing file or key is not an error.
func UnsetConfigValue(filePath, key string) error {
	path, ok := NormalizeKey(key)
	if !ok {
		return ErrUnknownKey{Key: key}
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	}

	k, err := loadFileOnly(filePath)
	if err != nil {
		return err
	}
	if !k.Exists(path) {
		return nil
	}
	k.Delete(path)
	return writeKoanf(filePath, k)
}

// loadFileOnly loads a single config file without defaults or env.
func loadFileOnly(filePath string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return k, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := k.Load(file.Provider(filePath), json.Parser()); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
	}
	return k, nil
}

// checkRanges rejects values that Load would reset to their defaults.
func checkRanges(k *koanf.Koanf) error {
	snap := Defaults()
	if err := k.Unmarshal("", &snap); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := newValidator().Struct(snap); err != nil {
		return fmt.Errorf("value out of range: %w", err)
	}
	return nil
}

func writeKoanf(filePath string, k *koanf.Koanf) error {
	content, err := k.Marshal(json.Parser())
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := writeAtomically(filePath, append(content, '\n')); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// writeAtomically writes content to a file atomically using a temporary file and rename.
// Creates parent directories if they don't exist.
func writeAtomically(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	tmpPath = ""
	return nil
}
