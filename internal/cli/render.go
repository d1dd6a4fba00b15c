package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	service "github.com/okian/aucscore/internal/app"
	"github.com/okian/aucscore/internal/config"
	"github.com/okian/aucscore/internal/domain/scoring"
)

// scoreOutput is the JSON shape of a single score.
type scoreOutput struct {
	SubmissionID string   `json:"submission_id"`
	Score        float64  `json:"score"`
	Scored       []string `json:"scored_columns"`
	Skipped      []string `json:"skipped_columns"`
}

func renderScore(w io.Writer, format string, res scoring.Result) error {
	switch format {
	case config.OutputJSON:
		return writeJSON(w, scoreOutput{
			SubmissionID: res.SubmissionID,
			Score:        res.Score,
			Scored:       nonNil(res.Scored),
			Skipped:      nonNil(res.Skipped),
		})
	case config.OutputText, "":
		_, _ = fmt.Fprintf(w, "score: %.6f\n", res.Score)
		_, _ = fmt.Fprintf(w, "scored columns (%d): %s\n", len(res.Scored), strings.Join(res.Scored, ", "))
		if len(res.Skipped) > 0 {
			_, _ = fmt.Fprintf(w, "skipped columns (%d): %s\n", len(res.Skipped), strings.Join(res.Skipped, ", "))
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, format)
	}
}

func renderReport(w io.Writer, format string, report service.Report) error {
	switch format {
	case config.OutputJSON:
		return writeJSON(w, report)
	case config.OutputText, "":
		renderLeaderboard(w, report)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, format)
	}
}

func renderLeaderboard(w io.Writer, report service.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Leaderboard")
	t.AppendHeader(table.Row{"Rank", "Submission", "Score", "Scored", "Skipped"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Score", Align: text.AlignRight},
	})
	for _, e := range report.Entries {
		t.AppendRow(table.Row{e.Rank, e.SubmissionID, fmt.Sprintf("%.6f", e.Score), len(e.Scored), len(e.Skipped)})
	}
	t.Render()

	if len(report.Failures) > 0 {
		_, _ = fmt.Fprintln(w)
		ft := table.NewWriter()
		ft.SetOutputMirror(w)
		ft.SetStyle(table.StyleLight)
		ft.SetTitle("Failures")
		ft.AppendHeader(table.Row{"Submission", "Kind", "Message"})
		for _, f := range report.Failures {
			ft.AppendRow(table.Row{f.SubmissionID, f.Kind, f.Message})
		}
		ft.Render()
	}

	if len(report.Duplicates) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, d := range report.Duplicates {
			_, _ = fmt.Fprintf(w, "duplicate: %s has the same content as %s\n", d.SubmissionID, d.SameAs)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
