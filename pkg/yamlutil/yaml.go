// Package yamlutil decodes the YAML files read by config and imagesource.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize caps the size of a YAML document accepted for decoding.
const MaxDocumentSize = 1 << 20

var (
	ErrEmptyDocument   = errors.New("yamlutil: empty document")
	ErrNilTarget       = errors.New("yamlutil: nil target")
	ErrDocumentTooLong = errors.New("yamlutil: document too large")
)

func checkInput(data []byte, target any) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLong, len(data), MaxDocumentSize)
	}
	if target == nil {
		return ErrNilTarget
	}
	return nil
}

// Decode parses data into target, ignoring unknown keys.
func Decode(data []byte, target any) error {
	if err := checkInput(data, target); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeStrict parses data into target and fails on keys target does not
// declare.
func DecodeStrict(data []byte, target any) error {
	if err := checkInput(data, target); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, target, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode renders v as YAML.
func Encode(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
