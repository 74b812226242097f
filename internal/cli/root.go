// Package cli implements the convoscore command-line interface.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"convoscore/internal/config"
	"convoscore/internal/judge"
	"convoscore/internal/logging"
	"convoscore/internal/retrieval"
	"convoscore/internal/satisfaction"
	"convoscore/internal/store"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convoscore",
		Short: "convoscore is a conversation risk and quality scoring engine",
		Long: "Convoscore scores customer support conversations: per-message sentiment, " +
			"escalation risk with deterministic fallbacks, response quality metrics, " +
			"tone selection, and a satisfaction log.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.convoscore/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newFeedbackCmd())
	cmd.AddCommand(newKnowledgeCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if issues := config.Validate(&cfg); len(issues) > 0 {
		for _, issue := range issues {
			log.Warn().Str("path", issue.Path).Msg(issue.Message)
		}
		return cfg, fmt.Errorf("config has %d validation issue(s)", len(issues))
	}
	return cfg, nil
}

func newJudgeClient(cfg config.Config) judge.Client {
	return judge.NewOpenAIClient(
		cfg.Judge.Endpoint, cfg.Judge.APIKey, cfg.Judge.Model,
		time.Duration(cfg.Judge.TimeoutSeconds)*time.Second, log,
	)
}

func newRetriever(cfg config.Config) retrieval.Retriever {
	return retrieval.NewHTTPRetriever(
		cfg.Retrieval.Endpoint, cfg.Retrieval.APIKey, cfg.Retrieval.Index,
		time.Duration(cfg.Retrieval.TimeoutSeconds)*time.Second, log,
	)
}

// openStores picks the configured backend and returns the satisfaction store
// plus the evaluation-history sink (nil for the memory backend). The caller
// must invoke the returned closer when done.
func openStores(cfg config.Config) (satisfaction.Store, *store.SQLiteEvaluationStore, func() error, error) {
	if cfg.Storage.Backend == "memory" {
		return satisfaction.NewMemoryStore(), nil, func() error { return nil }, nil
	}

	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = paths.DB
	}
	db, err := store.Open(dbPath, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return store.NewSQLiteSatisfactionStore(db), store.NewSQLiteEvaluationStore(db), db.Close, nil
}
