package content

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// catalogFiles lists the per-concern catalog files that together form one
// Catalog. Each file carries a distinct top-level key, so they can all be
// unmarshaled into the same struct.
var catalogFiles = []string{
	"enemies.yaml",
	"modifiers.yaml",
	"waves.yaml",
	"tiers.yaml",
	"links.yaml",
	"balance.yaml",
}

// defaultYAML returns the embedded default catalog file with the given name,
// or nil if it does not exist.
func defaultYAML(name string) []byte {
	data, err := defaultFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil
	}
	return data
}
