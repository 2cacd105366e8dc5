package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyKeyPath is returned when an override has no key.
var ErrEmptyKeyPath = errors.New("empty key path")

// ParseOverrides parses key=value pairs from --set flags into a map keyed
// by canonical config key.
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid override %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, ErrEmptyKeyPath
		}
		canonical, known := CanonicalKey(key)
		if !known {
			return nil, fmt.Errorf("invalid override %q: unknown key (known keys: %s)", pair, strings.Join(Keys(), ", "))
		}
		out[canonical] = value
	}
	return out, nil
}
