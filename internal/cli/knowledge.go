package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"convoscore/internal/knowledge"
)

func newKnowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Manage the knowledge base behind the retrieval index",
	}
	cmd.AddCommand(newKnowledgeSyncCmd())
	cmd.AddCommand(newKnowledgeStatsCmd())
	return cmd
}

func loadProcessor() (*knowledge.Processor, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	p := knowledge.NewProcessor(newRetriever(cfg), log)
	if err := p.Load(cfg.Knowledge.Path); err != nil {
		return nil, err
	}
	return p, nil
}

func newKnowledgeSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Upsert knowledge base articles into the retrieval index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProcessor()
			if err != nil {
				return err
			}
			if err := p.Sync(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d articles\n", len(p.Articles()))
			return nil
		},
	}
}

func newKnowledgeStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base article distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProcessor()
			if err != nil {
				return err
			}

			stats := p.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Articles: %d\n", stats.TotalArticles)
			fmt.Fprintln(out, "Categories:")
			for category, n := range stats.Categories {
				fmt.Fprintf(out, "  %-20s %d\n", category, n)
			}
			fmt.Fprintln(out, "Priorities:")
			for priority, n := range stats.Priorities {
				fmt.Fprintf(out, "  %-20s %d\n", priority, n)
			}
			return nil
		},
	}
}
