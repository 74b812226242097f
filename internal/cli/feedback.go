package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"convoscore/internal/satisfaction"
)

func newFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Manage the customer satisfaction log",
	}
	cmd.AddCommand(newFeedbackAddCmd())
	cmd.AddCommand(newFeedbackAvgCmd())
	cmd.AddCommand(newFeedbackTrendCmd())
	return cmd
}

func withTracker(fn func(*satisfaction.Tracker) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, _, closeStore, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(satisfaction.NewTracker(st))
}

func newFeedbackAddCmd() *cobra.Command {
	var (
		messageID string
		comment   string
	)

	cmd := &cobra.Command{
		Use:   "add <rating>",
		Short: "Record a satisfaction rating (1-5)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("rating must be an integer: %w", err)
			}
			return withTracker(func(tr *satisfaction.Tracker) error {
				rec, err := tr.Record(messageID, rating, comment)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recorded rating %d (id %s)\n", rec.Rating, rec.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&messageID, "message-id", "", "conversation message this rating refers to")
	cmd.Flags().StringVar(&comment, "comment", "", "optional free-form comment")
	return cmd
}

func newFeedbackAvgCmd() *cobra.Command {
	var lastN int

	cmd := &cobra.Command{
		Use:   "avg",
		Short: "Print the rolling average rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(func(tr *satisfaction.Tracker) error {
				avg, ok, err := tr.AverageRating(lastN)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "no ratings recorded")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "average rating: %.2f\n", avg)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&lastN, "last", 0, "average over the last N ratings (0 = all)")
	return cmd
}

func newFeedbackTrendCmd() *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Classify the rating trend over first and last windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(func(tr *satisfaction.Tracker) error {
				trend, err := tr.Trend(window)
				if err != nil {
					return err
				}
				if trend.Direction == satisfaction.TrendInsufficientData {
					fmt.Fprintf(cmd.OutOrStdout(), "insufficient data: %d record(s), need %d\n",
						trend.RecordCount, 2*window)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "trend: %s (first %.2f, last %.2f, delta %+.2f)\n",
					trend.Direction, trend.FirstAverage, trend.LastAverage, trend.Delta)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&window, "window", 5, "window size for trend comparison")
	return cmd
}
