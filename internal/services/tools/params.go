package tools

import (
	"fmt"
	"path/filepath"
)

// stringArg extracts a string argument
func stringArg(args map[string]any, key string, required bool) (string, error) {
	value, exists := args[key]
	if !exists || value == nil {
		if required {
			return "", fmt.Errorf("missing required parameter: %s", key)
		}
		return "", nil
	}

	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("parameter %s must be a string, got %T", key, value)
	}

	if required && str == "" {
		return "", fmt.Errorf("parameter %s cannot be empty", key)
	}
	return str, nil
}

// intArg extracts an integer argument; JSON numbers arrive as float64
func intArg(args map[string]any, key string) (int, bool, error) {
	value, exists := args[key]
	if !exists || value == nil {
		return 0, false, nil
	}

	switch v := value.(type) {
	case float64:
		return int(v), true, nil
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	default:
		return 0, false, fmt.Errorf("parameter %s must be a number, got %T", key, value)
	}
}

// firstStringArg returns the first present string argument among keys
func firstStringArg(args map[string]any, keys ...string) (string, error) {
	for _, key := range keys {
		s, err := stringArg(args, key, false)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("missing required parameter: %s", keys[0])
}

// resolvePath makes p absolute against the workspace root
func resolvePath(root, p string) (string, error) {
	if !filepath.IsAbs(p) {
		if root == "" {
			root = "."
		}
		p = filepath.Join(root, p)
	}
	return filepath.Abs(p)
}
