// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-engine/internal/classify"
	"github.com/pdiddy/review-engine/internal/docstore"
	"github.com/pdiddy/review-engine/internal/oracle"
	"github.com/pdiddy/review-engine/internal/parse"
	"github.com/pdiddy/review-engine/internal/prompts"
	"github.com/pdiddy/review-engine/internal/review"
	"github.com/pdiddy/review-engine/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a paper into academic disciplines",
	Long: `Classify runs the two-phase pipeline: parse paper content from the
document store (structured content id or raw document id), then classify
it into 1-3 of the 23 fixed disciplines with relevance scores.

The result is printed as JSON. With --experts the derived reviewer
roster is appended.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("file-id", "", "raw document id to parse and classify")
	classifyCmd.Flags().String("content-id", "", "structured content id (skips raw parsing)")
	classifyCmd.Flags().String("model", "claude-sonnet-4-5-20250929", "AI model identifier")
	classifyCmd.Flags().String("api-key", "", "Anthropic API key (default: .secrets/anthropic-api-key)")
	classifyCmd.Flags().String("work-dir", "work", "scratch directory for intermediate artifacts")
	classifyCmd.Flags().String("store", "sqlite", "store backend: none, sqlite, or proxy")
	classifyCmd.Flags().String("store-path", "store/review.db", "SQLite database path (sqlite backend)")
	classifyCmd.Flags().String("store-url", "", "store proxy base URL (proxy backend)")
	classifyCmd.Flags().Bool("no-persist", false, "do not persist the classification to the analysis store")
	classifyCmd.Flags().StringSlice("replay-phases", nil, "phases to replay from saved snapshots (parser, classifier)")
	classifyCmd.Flags().Bool("experts", false, "append the derived expert reviewer roster")

	rootCmd.AddCommand(classifyCmd)
}

// reviewConfig assembles the pipeline configuration from flags, config
// file, and loaded secrets.
func reviewConfig(cmd *cobra.Command) types.ReviewConfig {
	model, _ := cmd.Flags().GetString("model")
	apiKey, _ := cmd.Flags().GetString("api-key")
	workDir, _ := cmd.Flags().GetString("work-dir")
	backend, _ := cmd.Flags().GetString("store")
	storePath, _ := cmd.Flags().GetString("store-path")
	storeURL, _ := cmd.Flags().GetString("store-url")
	noPersist, _ := cmd.Flags().GetBool("no-persist")
	replay, _ := cmd.Flags().GetStringSlice("replay-phases")

	if v := viper.GetString("store.base_url"); storeURL == "" && v != "" {
		storeURL = v
	}

	ai := types.AIConfig{
		Model:  model,
		APIKey: secretDefault("anthropic-api-key", apiKey),
	}

	return types.ReviewConfig{
		Parse: types.ParseConfig{
			AIConfig:         ai,
			WorkDir:          workDir,
			PromptCharBudget: viper.GetInt("parse.prompt_char_budget"),
		},
		Classify: types.ClassifyConfig{
			AIConfig:     ai,
			WorkDir:      workDir,
			StoreResults: !noPersist,
		},
		Store: types.StoreConfig{
			Backend: types.StoreBackend(backend),
			Path:    storePath,
			BaseURL: storeURL,
			APIKey:  secretDefault("proxy-api-key", viper.GetString("store.api_key")),
			Timeout: 60 * time.Second,
		},
		DebugPhases: replay,
	}
}

// openStore builds the configured store backend. The returned closer may
// be nil.
func openStore(cfg types.StoreConfig) (docstore.Store, func() error, error) {
	switch cfg.Backend {
	case types.StoreNone, "":
		return nil, nil, nil
	case types.StoreSQLite:
		s, err := docstore.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case types.StoreProxy:
		s, err := docstore.NewProxyStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	fileID, _ := cmd.Flags().GetString("file-id")
	contentID, _ := cmd.Flags().GetString("content-id")
	withExperts, _ := cmd.Flags().GetBool("experts")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := reviewConfig(cmd)

	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	reg, err := prompts.Load()
	if err != nil {
		return err
	}

	store, closer, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	ai := &oracle.ClaudeOracle{
		APIKey: cfg.Classify.APIKey,
		Model:  cfg.Classify.Model,
	}

	var (
		contentStore  docstore.ContentStore
		analysisStore docstore.AnalysisStore
	)
	if store != nil {
		contentStore = store
		analysisStore = store
	}

	parser := parse.NewParser(contentStore, ai, reg, cfg.Parse, log)
	classifier := classify.NewClassifier(ai, analysisStore, reg, cfg.Classify, log)
	pipeline := review.NewPipeline(parser, classifier, cfg.Parse.WorkDir, cfg.DebugPhases, log)

	result, err := pipeline.Run(context.Background(), review.Input{
		FileID:                      fileID,
		StructuredContentOverviewID: contentID,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	if withExperts {
		return enc.Encode(struct {
			ExpertRoles []types.ExpertRole `json:"expert_roles"`
		}{ExpertRoles: result.ExpertRoles(0)})
	}
	return nil
}
