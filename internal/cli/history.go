package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/config"
	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/domain"
	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent extractions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				// SQLite treats a negative LIMIT as unbounded.
				return &usageError{fmt.Errorf("invalid limit %d: must be at least 1", limit)}
			}
			repo, err := history.New(config.DefaultHistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer repo.Close()

			entries, err := repo.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no extractions recorded")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			for _, e := range entries {
				detail := e.OutputPath
				if e.Status != domain.StatusCompleted {
					detail = e.Error
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.FinishedAt.Format("2006-01-02 15:04:05"), e.Status, e.Format, e.URL, detail)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show")
	return cmd
}
