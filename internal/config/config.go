// Package config overlays TOML and environment settings onto CLI options.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/nucled/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every env tag.
const EnvPrefix = "NUCLED_"

// DefaultFile is the settings file read when --config is not given.
const DefaultFile = "nucled.toml"

// LoadConfig loads configuration with precedence CLI args > env vars > config file.
//
// opts must be a pointer to a struct. Fields carry `toml:"section.key"` and
// `env:"KEY"` tags; the field named Config holds the TOML path. If cmd is
// provided, flags explicitly set on the command line are never overwritten.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	changed := changedFlags(cmd)

	if configPath := configPathOf(v); configPath != "" {
		doc, err := readTOML(configPath)
		if err != nil {
			return err
		}
		if doc != nil {
			applyTOML(v, doc, changed)
		}
	}

	applyEnv(v, changed)
	return nil
}

// changedFlags collects the names of flags set on the command line.
func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := make(map[string]bool)
	if cmd == nil {
		return changed
	}

	visit := func(f *pflag.Flag) {
		if f.Changed {
			changed[f.Name] = true
		}
	}
	cmd.Flags().VisitAll(visit)
	cmd.PersistentFlags().VisitAll(visit)
	return changed
}

func configPathOf(v reflect.Value) string {
	if f := v.FieldByName("Config"); f.IsValid() && f.Kind() == reflect.String {
		return f.String()
	}
	return ""
}

// readTOML returns nil without error when the file does not exist.
func readTOML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return doc, nil
}

func applyTOML(v reflect.Value, doc map[string]any, changed map[string]bool) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if changed[flagName(sf)] {
			continue
		}
		if path := sf.Tag.Get("toml"); path != "" {
			if value := getNestedValue(doc, path); value != nil {
				setFieldValue(v.Field(i), value)
			}
		}
	}
}

func applyEnv(v reflect.Value, changed map[string]bool) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if changed[flagName(sf)] {
			continue
		}
		if key := sf.Tag.Get("env"); key != "" {
			if value := os.Getenv(EnvPrefix + key); value != "" {
				setFieldValueFromString(v.Field(i), value)
			}
		}
	}
}

// fieldNameToFlag converts a struct field name to a CLI flag name, the same
// way humacli names its flags. Acronyms stay together.
// Example: "LoggingLevel" -> "logging-level", "LoggingAPI" -> "logging-api".
func fieldNameToFlag(fieldName string) string {
	runes := []rune(fieldName)
	var result []rune
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				result = append(result, '-')
			}
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// flagName returns the flag bound to a field, honoring an explicit name tag.
func flagName(sf reflect.StructField) string {
	if name := sf.Tag.Get("name"); name != "" {
		return name
	}
	return fieldNameToFlag(sf.Name)
}

// getNestedValue retrieves a value from nested map using dot notation.
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// setFieldValue sets a field from a decoded TOML value.
func setFieldValue(field reflect.Value, value any) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		if s, ok := value.(string); ok {
			field.SetString(s)
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
		}
	case reflect.Int:
		switch i := value.(type) {
		case int64:
			field.SetInt(i)
		case int:
			field.SetInt(int64(i))
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		if arr, ok := value.([]any); ok {
			slice := make([]string, len(arr))
			for i, v := range arr {
				if s, strOk := v.(string); strOk {
					slice[i] = s
				}
			}
			field.Set(reflect.ValueOf(slice))
		}
	}
}

// setFieldValueFromString sets a field from an environment variable.
func setFieldValueFromString(field reflect.Value, value string) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			field.SetBool(b)
		}
	case reflect.Int:
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			slice := make([]string, len(parts))
			for i, part := range parts {
				slice[i] = strings.TrimSpace(part)
			}
			field.Set(reflect.ValueOf(slice))
		}
	}
}

// LoadLoggingModules returns every module level in the [logging] table of the
// config file, including modules that have no dedicated option. level and
// format are not module names and are skipped. A missing or unreadable file
// yields an empty map.
func LoadLoggingModules(configPath string) map[string]string {
	modules := make(map[string]string)
	if configPath == "" {
		return modules
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return modules
	}

	var raw struct {
		Logging map[string]any `toml:"logging"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return modules
	}

	for key, value := range raw.Logging {
		if key == "level" || key == "format" {
			continue
		}
		if s, ok := value.(string); ok {
			modules[key] = s
		}
	}
	return modules
}

// LoggingConfig builds a logging.Config from global settings and module levels.
// Levels in explicit override those in modules.
func LoggingConfig(level, format string, modules, explicit map[string]string) logging.Config {
	cfg := logging.Config{
		Level:   level,
		Format:  format,
		Modules: make(map[string]string, len(modules)+len(explicit)),
	}
	for k, v := range modules {
		cfg.Modules[k] = v
	}
	for k, v := range explicit {
		if v != "" {
			cfg.Modules[k] = v
		}
	}
	return cfg
}
