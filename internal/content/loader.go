package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load assembles a validated Catalog from per-concern YAML files.
// Search order per file: customDir -> ./content -> embedded default.
// A file found in a directory fully replaces the embedded one; files are
// never merged field-by-field.
func Load(customDir string) (*Catalog, error) {
	cat := &Catalog{}

	for _, name := range catalogFiles {
		data, src, err := readCatalogFile(customDir, name)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cat); err != nil {
			return nil, fmt.Errorf("content: failed to parse %s: %w", src, err)
		}
	}

	if err := Validate(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadDefault assembles a validated Catalog from the embedded defaults only.
func LoadDefault() (*Catalog, error) {
	return Load("")
}

// readCatalogFile resolves one catalog file through the search order and
// returns its bytes plus a human-readable source for error messages.
func readCatalogFile(customDir, name string) ([]byte, string, error) {
	if customDir != "" {
		path := filepath.Join(customDir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("content: failed to read %s: %w", path, err)
		}
	}

	if data, err := os.ReadFile(filepath.Join("content", name)); err == nil {
		return data, filepath.Join("content", name), nil
	}

	if data := defaultYAML(name); data != nil {
		return data, "embedded " + name, nil
	}

	return nil, "", fmt.Errorf("content: no source for catalog file %s", name)
}
