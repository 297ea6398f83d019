package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"realorai-service/internal/domain"
)

func renderRound(out io.Writer, p domain.Progress, pair domain.RandomizedPair) {
	fmt.Fprintf(out, "\nRound %d/%d (%d%%) - %s\n", p.Current, p.Total, p.Percentage, pair.Pair.Kind)
	fmt.Fprintf(out, "  [L] %s\n", describeItem(pair.Left))
	fmt.Fprintf(out, "  [R] %s\n", describeItem(pair.Right))
}

func describeItem(it domain.QuizItem) string {
	switch it.Kind {
	case domain.KindQuote:
		if it.Author != "" {
			return fmt.Sprintf("%q (%s)", it.Source, it.Author)
		}
		return fmt.Sprintf("%q", it.Source)
	default:
		parts := []string{it.Source}
		if it.Title != "" {
			parts = append([]string{it.Title}, parts...)
		}
		if it.Fallback != "" {
			parts = append(parts, "fallback "+it.Fallback)
		}
		return strings.Join(parts, " | ")
	}
}

func renderScore(out io.Writer, s domain.Score, byKind map[domain.ContentKind]domain.KindScore) {
	fmt.Fprintf(out, "\nYou got %d of %d right (%d%%).\n", s.Correct, s.Total, s.Percentage)
	for _, k := range domain.ContentKinds {
		ks := byKind[k]
		fmt.Fprintf(out, "  %-6s %d/%d\n", k, ks.Correct, ks.Total)
	}
}

// renderLeaderboard prints rows as the server reported them.
func renderLeaderboard(out io.Writer, rows []domain.AgeGroupStats) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "\nNo scores yet.")
		return
	}
	fmt.Fprintln(out, "\nLeaderboard")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGE GROUP\tPLAYERS\tCORRECT\tAVERAGE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", r.AgeGroup, r.TotalAttempts, r.TotalCorrect, r.AverageScore)
	}
	_ = tw.Flush()
}
