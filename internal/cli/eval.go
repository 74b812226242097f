package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"convoscore/internal/config"
	"convoscore/internal/domain"
	"convoscore/internal/respond"
	"convoscore/internal/scoring"
)

// defaultQueries are used when neither --queries nor --query-file is given.
var defaultQueries = []string{
	"I can't reset my password and I'm locked out",
	"I was charged twice this month, need a refund",
	"How do I integrate the API and what are the rate limits?",
	"My account was suspended without warning",
}

type evalResult struct {
	Query     string                `json:"query"`
	DryRun    bool                  `json:"dryRun,omitempty"`
	Response  string                `json:"response,omitempty"`
	Retrieved []string              `json:"retrievedDocs,omitempty"`
	Overall   float64               `json:"overallScore"`
	Metrics   domain.QualityMetrics `json:"metrics"`
	LatencyS  float64               `json:"latencySeconds"`
}

type evalReport struct {
	DryRun         bool         `json:"dryRun"`
	QueryCount     int          `json:"queryCount"`
	OverallAverage float64      `json:"overallAverage"`
	Results        []evalResult `json:"results"`
	TotalTimeS     float64      `json:"totalTimeSeconds"`
}

func newEvalCmd() *cobra.Command {
	var (
		queries   []string
		queryFile string
		topK      int
		asJSON    bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Batch-evaluate response quality for a set of queries",
		Long: "Runs each query through retrieval, sentiment assessment, response " +
			"generation, and quality evaluation, then prints a report. Without a " +
			"judge API key it runs in dry-run mode and makes no external calls.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			qs, err := resolveQueries(queries, queryFile)
			if err != nil {
				return err
			}
			if topK < 1 {
				topK = cfg.Retrieval.TopK
			}

			if !dryRun && cfg.Judge.APIKey == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "judge API key not configured; running in dry-run mode")
				dryRun = true
			}

			var report evalReport
			if dryRun {
				report = dryRunReport(qs)
			} else {
				report = runEvaluation(cmd.Context(), cfg, qs, topK)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&queries, "queries", nil, "inline queries to evaluate")
	cmd.Flags().StringVar(&queryFile, "query-file", "", "file with one query per line")
	cmd.Flags().IntVar(&topK, "top-k", 3, "documents to retrieve per query")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output raw JSON only")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "skip external API calls")

	cmd.AddCommand(newEvalSummaryCmd())

	return cmd
}

func newEvalSummaryCmd() *cobra.Command {
	var (
		last   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize recorded evaluation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, evalStore, closeStore, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer closeStore()
			if evalStore == nil {
				return fmt.Errorf("evaluation history requires the sqlite storage backend")
			}

			history, err := evalStore.Recent(last)
			if err != nil {
				return err
			}
			summary := scoring.Summarize(history, last)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			if summary.TotalEvaluations == 0 {
				fmt.Fprintln(out, "no evaluations recorded")
				return nil
			}
			fmt.Fprintf(out, "Evaluations: %d\n", summary.TotalEvaluations)
			fmt.Fprintf(out, "Average Overall: %.3f\n", summary.AverageOverall)
			m := summary.AverageMetrics
			fmt.Fprintf(out, "Averages: prec=%.2f recall=%.2f faith=%.2f rel=%.2f retr=%.2f\n",
				m.ContextPrecision, m.ContextRecall, m.Faithfulness,
				m.AnswerRelevancy, m.RetrievalAccuracy)
			fmt.Fprintf(out, "Trend: %s\n", summary.Trend)
			return nil
		},
	}

	cmd.Flags().IntVar(&last, "last", 0, "summarize only the last N evaluations (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output raw JSON only")

	return cmd
}

func resolveQueries(inline []string, file string) ([]string, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("opening query file: %w", err)
		}
		defer f.Close()

		var qs []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				qs = append(qs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading query file: %w", err)
		}
		if len(qs) == 0 {
			return nil, fmt.Errorf("query file %s contains no queries", file)
		}
		return qs, nil
	}
	if len(inline) > 0 {
		return inline, nil
	}
	return defaultQueries, nil
}

// dryRunReport produces structural output without any external call.
func dryRunReport(queries []string) evalReport {
	results := make([]evalResult, len(queries))
	for i, q := range queries {
		results[i] = evalResult{Query: q, DryRun: true}
	}
	return evalReport{DryRun: true, QueryCount: len(queries), Results: results}
}

func runEvaluation(ctx context.Context, cfg config.Config, queries []string, topK int) evalReport {
	start := time.Now()

	j := newJudgeClient(cfg)
	retriever := newRetriever(cfg)
	sentiment := scoring.NewSentimentScorer(j, log)
	generator := respond.NewGenerator(j, cfg.Generation.Temperature, log)
	quality := scoring.NewResponseQualityScorer(j, log)

	_, evalStore, closeStore, err := openStores(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("evaluation history unavailable")
	} else {
		defer closeStore()
	}

	var history domain.History
	var results []evalResult
	var overallSum float64

	for _, q := range queries {
		t0 := time.Now()

		docs, err := retriever.Search(ctx, q, topK, nil)
		if err != nil {
			log.Warn().Err(err).Str("query", q).Msg("retrieval failed, evaluating without context")
			docs = nil
		}
		sent := sentiment.Assess(ctx, q)
		tone := scoring.SelectTone(sent, nil)
		reply := generator.Generate(ctx, q, docs, history, sent, tone)
		assessment := quality.Evaluate(ctx, q, reply.Response, docs, "")
		if evalStore != nil {
			if err := evalStore.Append(assessment); err != nil {
				log.Warn().Err(err).Msg("recording evaluation failed")
			}
		}

		history = append(history,
			domain.ConversationMessage{Sender: domain.SenderCustomer, Content: q, Timestamp: t0, Sentiment: &sent},
			domain.ConversationMessage{Sender: domain.SenderAgent, Content: reply.Response, Timestamp: time.Now(), Tone: tone},
		)

		titles := make([]string, len(docs))
		for i, d := range docs {
			titles[i] = d.Title
		}
		results = append(results, evalResult{
			Query:     q,
			Response:  reply.Response,
			Retrieved: titles,
			Overall:   assessment.OverallScore,
			Metrics:   assessment.Metrics,
			LatencyS:  time.Since(t0).Seconds(),
		})
		overallSum += assessment.OverallScore
	}

	return evalReport{
		QueryCount:     len(results),
		OverallAverage: overallSum / float64(len(results)),
		Results:        results,
		TotalTimeS:     time.Since(start).Seconds(),
	}
}

func printReport(w io.Writer, report evalReport) {
	fmt.Fprintln(w, "=== Evaluation Report ===")
	mode := "LIVE"
	if report.DryRun {
		mode = "DRY-RUN"
	}
	fmt.Fprintf(w, "Mode: %s\n", mode)
	fmt.Fprintf(w, "Queries: %d\n", report.QueryCount)
	if !report.DryRun {
		fmt.Fprintf(w, "Overall Average Score: %.3f\n", report.OverallAverage)
	}

	for _, r := range report.Results {
		fmt.Fprintln(w, "\n---")
		fmt.Fprintf(w, "Query: %s\n", r.Query)
		if report.DryRun {
			continue
		}
		fmt.Fprintf(w, "Retrieved: %s\n", strings.Join(r.Retrieved, ", "))
		fmt.Fprintf(w, "Score: %.3f | Latency: %.2fs\n", r.Overall, r.LatencyS)
		fmt.Fprintf(w, "Metrics: prec=%.2f faith=%.2f rel=%.2f retr=%.2f\n",
			r.Metrics.ContextPrecision, r.Metrics.Faithfulness,
			r.Metrics.AnswerRelevancy, r.Metrics.RetrievalAccuracy)
	}
	fmt.Fprintln(w, "\nDone.")
}
