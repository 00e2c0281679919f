package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driving"
)

var (
	syncDryRun    bool
	syncSince     string
	syncLimit     int
	syncNoHistory bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push newly modified Drive files into the Notion database",
	Long: `Lists Google Drive files modified after the newest entry of the Notion
database and creates one page per file, one write at a time.

The first failure aborts the run. Files already pushed by an earlier run are
skipped using the local run history unless they were modified since.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "List files without creating pages")
	syncCmd.Flags().StringVar(&syncSince, "since", "",
		"Override the watermark (RFC3339 or YYYY-MM-DD)")
	syncCmd.Flags().IntVar(&syncLimit, "limit", 0, "Maximum number of files to handle (0 = no limit)")
	syncCmd.Flags().BoolVar(&syncNoHistory, "no-history", false, "Do not record the run in the local history")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	since, err := parseSince(syncSince)
	if err != nil {
		return err
	}
	if syncLimit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}

	svc, err := getSyncService(cmd.Context())
	if err != nil {
		return err
	}

	report, err := svc.Run(cmd.Context(), driving.SyncOptions{
		DryRun: syncDryRun,
		Since:  since,
		Limit:  syncLimit,
	})
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

// parseSince accepts an RFC3339 timestamp or a calendar date (UTC midnight).
func parseSince(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid --since %q", domain.ErrInvalidInput, value)
}

func printReport(cmd *cobra.Command, report *domain.SyncReport) {
	run := report.Run

	title := styles.Title.Render("Sync") + " " + styles.status(run.Status)
	if run.DryRun {
		title += styles.Muted.Render(" (dry run)")
	}
	cmd.Println(title)

	since := "beginning"
	if !run.Since.IsZero() {
		since = run.Since.UTC().Format(time.RFC3339)
	}

	cmd.Printf("  %s %s\n", styles.Label.Render("run:"), run.ID)
	cmd.Printf("  %s %s\n", styles.Label.Render("since:"), since)
	cmd.Printf("  %s %d\n", styles.Label.Render("listed:"), run.FilesListed)
	cmd.Printf("  %s %d\n", styles.Label.Render("created:"), run.PagesCreated)
	cmd.Printf("  %s %d\n", styles.Label.Render("skipped:"), run.FilesSkipped)
	if d := run.Duration(); d > 0 {
		cmd.Printf("  %s %s\n", styles.Label.Render("duration:"), d.Round(time.Millisecond))
	}
	if run.Error != "" {
		cmd.Printf("  %s %s\n", styles.Label.Render("error:"), styles.Error.Render(run.Error))
	}

	if len(report.Results) == 0 {
		return
	}
	cmd.Println()
	for _, r := range report.Results {
		line := fmt.Sprintf("  %-8s %s", styles.outcome(r.Outcome), r.File.Name)
		if r.PageID != "" {
			line += " " + styles.Muted.Render("("+r.PageID+")")
		}
		cmd.Println(line)
	}
}
