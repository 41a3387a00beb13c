package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/studypal/internal/llm"
	"github.com/abhisek/studypal/internal/store"
	"github.com/abhisek/studypal/internal/study"
)

var rootCmd = &cobra.Command{
	Use:   "studypal",
	Short: "Personal study assistant",
	Long: "StudyPal — turn your own notes into quizzes. Import documents, extract knowledge\n" +
		"points with an LLM, get quizzed, and review what you got wrong.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// API keys can live in a local .env during development.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYPAL_DB env var)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(kpsCmd)
	rootCmd.AddCommand(chunkCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYPAL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the resolved database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newAssistant builds the study assistant over the resolved database.
// The model provider is optional: commands that never call the model keep
// working without API keys.
func newAssistant(ctx context.Context, cmd *cobra.Command, st *store.Store) *study.Assistant {
	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Model-backed commands (extract, quiz) will be unavailable.")
		return study.New(st, nil)
	}
	return study.New(st, provider)
}
