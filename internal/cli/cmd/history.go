package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jebstuart/TimeoutOverride/internal/cli/styles"
	"github.com/jebstuart/TimeoutOverride/internal/domain/entity"
)

var (
	historyJSON bool
	historyMax  int
)

const defaultHistoryMax = 20

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent wake sessions",
	Long:  `Shows when the override held the system awake, for how long, and why each hold ended.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum sessions to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	// SQLite treats a negative LIMIT as unlimited; reject it here instead.
	if historyMax <= 0 {
		return fmt.Errorf("--max must be positive, got %d", historyMax)
	}
	if app.Sessions == nil {
		return fmt.Errorf("session history is disabled (set history.enabled in the config)")
	}

	sessions, err := app.Sessions.Recent(cmd.Context(), historyMax)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("no wake sessions recorded yet")
		return nil
	}

	th := styles.DefaultTheme()
	now := time.Now()
	for _, s := range sessions {
		fmt.Println(formatSession(th, s, now))
	}
	return nil
}

func formatSession(th *styles.Theme, s entity.WakeSession, now time.Time) string {
	started := s.StartedAt.Local().Format("2006-01-02 15:04:05")
	dur := s.Duration(now).Truncate(time.Second)

	var end string
	switch {
	case s.EndedAt == nil:
		end = th.GoodStyle.Render("still awake")
	case s.Reason == entity.EndReasonExpired:
		end = th.Subtle.Render("expired")
	default:
		end = th.Subtle.Render("cancelled")
	}

	return fmt.Sprintf("%s  %s  %s  %s",
		th.Normal.Render(started),
		th.Highlight.Render(fmt.Sprintf("%8s", dur)),
		th.Subtle.Render(fmt.Sprintf("%3d touches", s.ResetCount)),
		end,
	)
}
