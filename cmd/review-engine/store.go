// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-engine/internal/docstore"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local document store",
	Long: `Store manages the local SQLite document store used by the classify
pipeline when no remote store proxy is configured.`,
}

// --- import-pages subcommand ---

var storeImportCmd = &cobra.Command{
	Use:   "import-pages <file-id> <text-file>",
	Short: "Import a document's page texts into the local store",
	Long: `Import-pages reads a plain-text or Markdown file, splits it into pages
on form-feed characters (the whole file becomes one page when none are
present), and stores the pages under the given file id so the classify
pipeline can parse it through the raw-document path.`,
	Args: cobra.ExactArgs(2),
	RunE: runStoreImport,
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	fileID, path := args[0], args[1]
	dbPath, _ := cmd.Flags().GetString("store-path")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	pages := strings.Split(string(data), "\f")

	store, err := docstore.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ImportPages(context.Background(), fileID, pages); err != nil {
		return err
	}
	fmt.Printf("Imported %d page(s) as file %s\n", len(pages), fileID)
	return nil
}

// --- analyses subcommand ---

var storeAnalysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "List stored classification analyses",
	RunE:  runStoreAnalyses,
}

func runStoreAnalyses(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("store-path")

	store, err := docstore.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListAnalyses(context.Background())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No analyses stored.")
		return nil
	}

	for _, rec := range records {
		status := "pending"
		if rec.Completed {
			status = "complete"
		}
		fmt.Printf("%s  %-28s  %-9s  %s\n", rec.ID, rec.Type, status, rec.Title)
	}
	return nil
}

func init() {
	storeCmd.PersistentFlags().String("store-path", "store/review.db", "SQLite database path")
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeAnalysesCmd)

	rootCmd.AddCommand(storeCmd)
}
