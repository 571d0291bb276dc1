package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/track"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// report is the machine readable outcome of one pipeline run.
type report struct {
	File        string                 `json:"file" yaml:"file"`
	FlagColumn  string                 `json:"flag_column" yaml:"flag_column"`
	Epoch       string                 `json:"epoch,omitempty" yaml:"epoch,omitempty"`
	SpanSeconds float64                `json:"span_seconds" yaml:"span_seconds"`
	Summary     boundary.Summary       `json:"summary" yaml:"summary"`
	Dropped     int                    `json:"dropped" yaml:"dropped"`
	Context     string                 `json:"context_column,omitempty" yaml:"context_column,omitempty"`
	Distinct    int                    `json:"distinct_contexts,omitempty" yaml:"distinct_contexts,omitempty"`
	Legend      []boundary.LegendEntry `json:"legend,omitempty" yaml:"legend,omitempty"`
}

func buildReport(d *dataState) (*report, error) {
	if d.err != nil {
		return nil, d.err
	}
	res := d.result
	r := &report{
		File:        d.path,
		FlagColumn:  res.FlagColumn,
		SpanSeconds: res.Span(),
		Summary:     res.Summary,
		Dropped:     res.Dropped,
	}
	if len(res.Rows) > 0 {
		r.Epoch = res.Epoch.Format(time.RFC3339)
	}
	if d.contextErr != nil {
		return nil, d.contextErr
	}
	if ct := d.track; ct != nil {
		r.Context = ct.Column
		r.Distinct = len(ct.Distinct)
		r.Legend = ct.Legend
	}
	return r, nil
}

func writeReport(w io.Writer, r *report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		_, err := io.WriteString(w, renderReportTable(r))
		return err
	default:
		return fmt.Errorf("unsupported format %q: must be table, json or yaml", format)
	}
}

func renderReportTable(r *report) string {
	border := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	head := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	styler := func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return head
		}
		return cell
	}

	epoch := r.Epoch
	if epoch == "" {
		epoch = "-"
	}
	s := r.Summary
	overview := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		StyleFunc(styler).
		Headers("", appTitle).
		Rows(
			[]string{"File", r.File},
			[]string{"Flag column", r.FlagColumn},
			[]string{"Epoch", epoch},
			[]string{"Span", track.FormatSeconds(r.SpanSeconds)},
			[]string{"Windows", fmtCount(s.Total)},
			[]string{"Observed", fmtCount(s.Observed) + " (" + fmtPercent(s.Observed, s.Total) + ")"},
			[]string{"Outside", fmtCount(s.Outside) + " (" + fmtPercent(s.Outside, s.Total) + ")"},
			[]string{"Dropped rows", fmtCount(r.Dropped)},
		)
	out := overview.Render() + "\n"

	if r.Context == "" {
		return out
	}
	legend := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		StyleFunc(styler).
		Headers(r.Context, "Segments", "Colour")
	for _, e := range r.Legend {
		legend.Row(e.Label, fmtCount(e.Count), strconv.Itoa(e.ColorIndex))
	}
	out += legend.Render() + "\n"
	if hidden := r.Distinct - len(r.Legend); hidden > 0 {
		out += fmt.Sprintf("+%s more contexts\n", fmtCount(hidden))
	}
	return out + contextCaption + "\n"
}
