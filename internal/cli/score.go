package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"convoscore/internal/engine"
	"convoscore/internal/satisfaction"
)

func newScoreCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score <message...>",
		Short: "Score a single customer message through the full pipeline",
		Long: "Runs one message through signal extraction, sentiment assessment, " +
			"escalation prediction, tone selection, response generation, and " +
			"quality evaluation, then prints the result.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, evalStore, closeStore, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			var evals engine.EvaluationSink
			if evalStore != nil {
				evals = evalStore
			}

			e := engine.New(engine.Options{
				Judge:       newJudgeClient(cfg),
				Retriever:   newRetriever(cfg),
				Tracker:     satisfaction.NewTracker(st),
				Evaluations: evals,
				TopK:        cfg.Retrieval.TopK,
				Temperature: cfg.Generation.Temperature,
				Log:         log,
			})

			result, err := e.ProcessMessage(cmd.Context(), engine.NewSession(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sentiment: %.2f (%s, %s, urgency %.2f)\n",
				result.Sentiment.Score, result.Sentiment.Label,
				result.Sentiment.PrimaryEmotion, result.Sentiment.Urgency)
			fmt.Fprintf(out, "Risk:      %.2f (%s, priority %s, respond within %s)\n",
				result.Risk.Score, result.Risk.Level, result.Risk.Priority, result.Risk.TargetResponseTime)
			for _, action := range result.Risk.RecommendedActions {
				fmt.Fprintf(out, "  - %s\n", action)
			}
			fmt.Fprintf(out, "Tone:      %s\n", result.Tone)
			fmt.Fprintf(out, "Response:  %s\n", result.Response.Response)
			fmt.Fprintf(out, "Quality:   %.3f (degraded=%v, docs=%d)\n",
				result.Quality.OverallScore, result.Quality.Degraded, result.Quality.DocCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output raw JSON only")
	return cmd
}
