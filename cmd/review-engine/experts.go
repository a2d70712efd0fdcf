// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-engine/internal/taxonomy"
)

var expertsCmd = &cobra.Command{
	Use:   "experts [discipline...]",
	Short: "Derive the expert reviewer roster for disciplines",
	Long: `Experts prints the reviewer roster derived for the given ranked
discipline names (first name is primary). With no arguments the generic
default roster is printed.`,
	RunE: runExperts,
}

func init() {
	expertsCmd.Flags().Int("count", taxonomy.DefaultRoleCount, "number of expert roles")
	expertsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(expertsCmd)
}

func runExperts(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	roles := taxonomy.DeriveRoles(args, count)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(roles)
	}

	for _, role := range roles {
		dynamic := ""
		if role.IsDynamic {
			dynamic = " (dynamic)"
		}
		fmt.Printf("%d. %s [%s]%s\n   %s\n", role.ID, role.Name, role.Model, dynamic, role.Focus)
	}
	return nil
}
