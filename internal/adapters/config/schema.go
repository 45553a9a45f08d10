package config

import (
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// subTable returns table[key] as a table, or nil when absent. parents name
// the enclosing keys for the error message.
func subTable(path string, table map[string]any, key string, parents ...string) (map[string]any, error) {
	raw, ok := table[key]
	if !ok {
		return nil, nil
	}
	sub, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidValue(path, keyPath(parents, key)+" must be a table")
	}
	return sub, nil
}

// stringArray returns table[key] as a list of strings, or nil when absent.
func stringArray(path string, table map[string]any, key string, parents ...string) ([]string, error) {
	raw, ok := table[key]
	if !ok {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, invalidValue(path, keyPath(parents, key)+" must be an array of strings")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, invalidValue(path, keyPath(parents, key)+" must be an array of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func keyPath(parents []string, key string) string {
	return strings.Join(append(append([]string{}, parents...), key), ".")
}

func invalidValue(path, msg string) error {
	return zerr.With(zerr.Wrap(zerr.New(msg), domain.ErrInvalidConfigValue.Error()), "path", path)
}
