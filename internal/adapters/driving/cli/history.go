package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wim-web/bookin/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sync runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	svc, err := getHistoryService()
	if err != nil {
		return err
	}

	runs, err := svc.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	cmd.Println(historyTable(runs))
	return nil
}

func historyTable(runs []domain.SyncRun) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("STARTED", "STATUS", "LISTED", "CREATED", "SKIPPED", "DURATION", "ERROR")

	for i := range runs {
		run := &runs[i]
		status := string(run.Status)
		if run.DryRun {
			status += " (dry)"
		}
		duration := "-"
		if d := run.Duration(); d > 0 {
			duration = d.Round(time.Second).String()
		}
		t.Row(
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			strconv.Itoa(run.FilesListed),
			strconv.Itoa(run.PagesCreated),
			strconv.Itoa(run.FilesSkipped),
			duration,
			truncate(run.Error, 60),
		)
	}

	return t.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
