// Package report renders a RunSummary for humans or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"github.com/pterm/pterm"

	"github.com/naka-gawa/ghloc/internal/domain"
)

const rule = "--------------------------------"

// Spread describes how additions are distributed over the investigated repositories.
type Spread struct {
	Mean   float64 `json:"mean_additions"`
	Median float64 `json:"median_additions"`
}

// SpreadOf computes the additions spread of a summary.
// It returns false when there are no repositories to describe.
func SpreadOf(summary domain.RunSummary) (Spread, bool) {
	if len(summary.PerRepo) == 0 {
		return Spread{}, false
	}
	data := make(stats.Float64Data, 0, len(summary.PerRepo))
	for _, row := range summary.PerRepo {
		data = append(data, float64(row.Additions))
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Spread{}, false
	}
	median, err := stats.Median(data)
	if err != nil {
		return Spread{}, false
	}
	return Spread{Mean: mean, Median: median}, true
}

// Text writes the per-repository table followed by the run summary.
func Text(w io.Writer, summary domain.RunSummary) error {
	if len(summary.PerRepo) > 0 {
		data := pterm.TableData{{"Repo", "Additions", "Deletions", "Commits"}}
		for _, row := range summary.PerRepo {
			data = append(data, []string{
				row.RepoName,
				humanize.Comma(int64(row.Additions)),
				humanize.Comma(int64(row.Deletions)),
				humanize.Comma(int64(row.Commits)),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, table)
	}

	fmt.Fprintln(w, "------------ SUMMARY ------------")
	fmt.Fprintf(w, "Total commits: %s\n", humanize.Comma(int64(summary.TotalCommits)))
	fmt.Fprintf(w, "Total additions: %s\n", humanize.Comma(int64(summary.TotalAdditions)))
	fmt.Fprintf(w, "Total deletions: %s\n", humanize.Comma(int64(summary.TotalDeletions)))
	fmt.Fprintf(w, "Repos successfully investigated: %d / %d\n", summary.InvestigatedCount, summary.RequestedCount)
	fmt.Fprintf(w, "Repos not investigated: %s\n", names(summary.UnresolvedRepoNames))
	if len(summary.GivenUpRepoNames) > 0 {
		fmt.Fprintf(w, "Repos whose statistics never became ready: %s\n", names(summary.GivenUpRepoNames))
	}
	if spread, ok := SpreadOf(summary); ok {
		fmt.Fprintf(w, "Additions per repo: median %s, mean %s\n",
			humanize.CommafWithDigits(spread.Median, 1), humanize.CommafWithDigits(spread.Mean, 1))
	}
	_, err := fmt.Fprintln(w, rule)
	return err
}

func names(list []string) string {
	if len(list) == 0 {
		return "none"
	}
	return strings.Join(list, ", ")
}

type jsonReport struct {
	domain.RunSummary
	Spread *Spread `json:"spread,omitempty"`
}

// JSON writes the summary as pretty-printed JSON.
func JSON(w io.Writer, summary domain.RunSummary) error {
	out := jsonReport{RunSummary: summary}
	if spread, ok := SpreadOf(summary); ok {
		out.Spread = &spread
	}
	jsonData, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
