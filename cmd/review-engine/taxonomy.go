// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-engine/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Print the discipline taxonomy",
	Long: `Taxonomy prints the fixed 23-discipline table and the per-discipline
keyword digest, exactly as they are rendered into the classifier prompt.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(taxonomy.RenderTable())
		fmt.Println()
		fmt.Println(taxonomy.RenderKeywordDigest())
	},
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
}
