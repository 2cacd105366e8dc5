package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

type valueKind int

const (
	kindBool valueKind = iota
	kindString
	kindObject
)

func (k valueKind) String() string {
	switch k {
	case kindBool:
		return "a boolean"
	case kindString:
		return "a string"
	default:
		return "an object"
	}
}

// fileSchema lists the JSON type each known top-level key must have.
var fileSchema = map[string]valueKind{
	"enabled":                  kindBool,
	"titlePrefix":              kindString,
	"notifyOnResponseComplete": kindBool,
	"notifyOnApprovalRequired": kindBool,
	"tools":                    kindObject,
	"policy":                   kindString,
	"backend":                  kindString,
	"appName":                  kindString,
	"activateApp":              kindString,
}

// toolsSchema lists the JSON type of each key under "tools".
var toolsSchema = map[string]valueKind{
	"Notify": kindBool,
}

// ValidateFileTypes checks that the values parsed from a config file have
// the expected JSON types. Unknown keys are ignored. A null value is a
// type mismatch.
func ValidateFileTypes(raw map[string]interface{}, filePath string) error {
	if err := checkKinds(raw, fileSchema, "", filePath); err != nil {
		return err
	}
	if tools, ok := raw["tools"].(map[string]interface{}); ok {
		if err := checkKinds(tools, toolsSchema, "tools.", filePath); err != nil {
			return err
		}
	}
	return nil
}

func checkKinds(raw map[string]interface{}, schema map[string]valueKind, prefix, filePath string) error {
	for key, want := range schema {
		value, present := raw[key]
		if !present {
			continue
		}
		if !hasKind(value, want) {
			return &ValidationError{
				FilePath: filePath,
				Field:    prefix + key,
				Message:  fmt.Sprintf("must be %s, got %s", want, describe(value)),
			}
		}
	}
	return nil
}

func hasKind(value interface{}, want valueKind) bool {
	switch want {
	case kindBool:
		_, ok := value.(bool)
		return ok
	case kindString:
		_, ok := value.(string)
		return ok
	default:
		_, ok := value.(map[string]interface{})
		return ok
	}
}

func describe(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", value), "*")
	}
}
