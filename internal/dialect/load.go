package dialect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default. Keys missing from the file keep their
// default value; unknown keys are rejected.
func Load(path string) (Dialect, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dialect{}, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()
	d, err := Decode(f)
	if err != nil {
		return Dialect{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Decode reads a TOML dialect from r over Default.
func Decode(r io.Reader) (Dialect, error) {
	d := Default()
	meta, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return Dialect{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Dialect{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := d.Validate(); err != nil {
		return Dialect{}, err
	}
	return d, nil
}

// Resolve loads an explicit path, or the nearest FileName above startDir,
// or falls back to Default. The returned path is empty for the default.
func Resolve(explicit, startDir string) (Dialect, string, error) {
	path := explicit
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Dialect{}, "", err
		}
		if !ok {
			return Default(), "", nil
		}
		path = found
	}
	d, err := Load(path)
	if err != nil {
		return Dialect{}, "", err
	}
	return d, path, nil
}

// Encode writes d as TOML.
func (d Dialect) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(d)
}
