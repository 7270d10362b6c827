package utils

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrUnparseable is returned when no parsing strategy accepts the input.
var ErrUnparseable = errors.New("input is not JSON, repairable JSON, or Hjson")

// RepairJSON fixes common hand-editing mistakes in JSON data files:
// unquoted keys, single quotes, trailing commas, comments, unclosed
// brackets.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair: %w", err)
	}
	return repaired, nil
}

// ParseHJSON parses Hjson and returns standard JSON.
// Hjson allows comments, unquoted keys and strings, and optional commas.
func ParseHJSON(data string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(data), &result); err != nil {
		return "", fmt.Errorf("hjson parse: %w", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("hjson to json: %w", err)
	}
	return string(jsonBytes), nil
}

// DecodeHJSON decodes Hjson into v through its json tags.
func DecodeHJSON(data []byte, v interface{}) error {
	converted, err := ParseHJSON(string(data))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(converted), v); err != nil {
		return fmt.Errorf("hjson decode: %w", err)
	}
	return nil
}

// SmartParse decodes input into v, trying in order:
// 1. Standard JSON
// 2. JSON repair
// 3. Hjson (most lenient)
// Hjson output is re-encoded as JSON so v's json tags apply on every path.
// It returns the JSON text that was finally decoded.
func SmartParse(input []byte, v interface{}) (string, error) {
	// Try 1: Standard JSON
	if err := json.Unmarshal(input, v); err == nil {
		return string(input), nil
	}

	// Try 2: JSON Repair
	if repaired, err := RepairJSON(string(input)); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return repaired, nil
		}
	}

	// Try 3: Hjson
	if converted, err := ParseHJSON(string(input)); err == nil {
		if err := json.Unmarshal([]byte(converted), v); err == nil {
			return converted, nil
		}
	}

	return "", ErrUnparseable
}
