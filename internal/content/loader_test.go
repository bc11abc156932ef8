package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefault(t *testing.T) {
	cat, err := LoadDefault()
	if err != nil {
		t.Fatalf("embedded defaults failed to load: %v", err)
	}

	if cat.Enemy("grunt") == nil {
		t.Error("default catalog has no grunt archetype")
	}
	if cat.Tier("NORMAL") == nil {
		t.Error("default catalog has no NORMAL tier")
	}
	if cat.HandcraftedFor(1) == nil {
		t.Error("default catalog has no handcrafted wave 1")
	}
	if cat.LinkLevelFor(1) == nil {
		t.Error("default catalog has no link level 1")
	}
	if cat.Balance.Boss.ArchetypeID == "" {
		t.Error("default catalog has no boss archetype configured")
	}
	if cat.Baselines.MaxOutgoingLinksPerTower <= 0 {
		t.Error("default catalog has no outgoing link cap")
	}
}

func TestLoadCustomDirOverridesFile(t *testing.T) {
	// A custom tiers.yaml fully replaces the embedded tier list; the other
	// files still come from the embedded defaults.
	dir := t.TempDir()
	custom := `tiers:
  - id: CUSTOM
    seed_salt: 42
    spawn_count_mul: 2
    intensity_mul: 2
    miniboss_guaranteed_wave: 5
`
	if err := os.WriteFile(filepath.Join(dir, "tiers.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("load with custom tiers failed: %v", err)
	}
	if cat.Tier("CUSTOM") == nil {
		t.Fatal("custom tier not loaded")
	}
	if cat.Tier("NORMAL") != nil {
		t.Error("embedded tiers survived a full file replacement")
	}
	if cat.Enemy("grunt") == nil {
		t.Error("embedded enemies were lost when only tiers were overridden")
	}
}

func TestLoadMalformedCustomFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enemies.yaml")
	if err := os.WriteFile(path, []byte("enemies: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("malformed custom file did not fail the load")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the offending file", err)
	}
}

func TestLoadInvalidCustomContentFailsValidation(t *testing.T) {
	// Overriding enemies with too few archetypes must stop startup.
	dir := t.TempDir()
	custom := `enemies:
  - id: lonely
    hp: 10
    speed: 5
`
	if err := os.WriteFile(filepath.Join(dir, "enemies.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("invalid custom content did not fail validation")
	}
	if !strings.Contains(err.Error(), "invalid catalog") {
		t.Errorf("error = %q, want a validation failure", err)
	}
}
