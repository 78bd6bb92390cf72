// Package yamlutil wraps goccy/go-yaml for the YAML jobs of md2book:
// strict decoding of configuration files, and encoding and reading back
// the document front matter with a fixed key order.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrEmptyKey       = errors.New("yamlutil: empty key")
	ErrDuplicateKey   = errors.New("yamlutil: duplicate key")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Field is one key of an ordered mapping.
type Field struct {
	Key   string
	Value any
}

// MarshalOrdered encodes fields as a YAML mapping, keys in the given order.
// Keys must be unique and non-empty.
func MarshalOrdered(fields []Field) ([]byte, error) {
	seen := make(map[string]bool, len(fields))
	ms := make(yaml.MapSlice, 0, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			return nil, ErrEmptyKey
		}
		if seen[f.Key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, f.Key)
		}
		seen[f.Key] = true
		ms = append(ms, yaml.MapItem{Key: f.Key, Value: f.Value})
	}

	out, err := yaml.Marshal(ms)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
