package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// ReadConfig reads name and, when present, the sibling <name>.local.<ext>,
// with the local file's values taking priority. Returns os.ErrNotExist when
// neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	ext := filepath.Ext(name)
	localName := fmt.Sprintf("%s.local%s", strings.TrimSuffix(name, ext), ext)

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("%s: %w", name, err)
		}
		found = true
	}

	local, err := os.ReadFile(localName)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(local) > 0 {
		var override T
		if err := json5.Unmarshal(local, &override); err != nil {
			return out, fmt.Errorf("%s: %w", localName, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localName)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}
