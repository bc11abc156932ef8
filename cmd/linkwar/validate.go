package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate content catalogs",
	Long: `Load content YAML through the normal search order and validate it,
printing a summary of what was loaded.

Examples:
  linkwar validate
  linkwar validate --content ./my-content`,
	Run: runValidate,
}

func runValidate(_ *cobra.Command, _ []string) {
	// loadCatalog already validates and exits non-zero with the full
	// problem list on failure.
	cat := loadCatalog()

	fmt.Println("Content OK.")
	fmt.Printf("  enemies:           %d\n", len(cat.Enemies))
	fmt.Printf("  modifiers:         %d\n", len(cat.Modifiers))
	fmt.Printf("  tiers:             %d\n", len(cat.Tiers))
	fmt.Printf("  link levels:       %d\n", len(cat.LinkLevels))
	fmt.Printf("  handcrafted waves: %d\n", len(cat.Handcrafted))
	fmt.Printf("  total waves:       %d\n", cat.Balance.TotalWaves)
}
