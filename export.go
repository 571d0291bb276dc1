package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/chart"
	"github.com/andareed/siftly-obsmap/config"
	"github.com/andareed/siftly-obsmap/logging"
	"golang.org/x/sync/errgroup"
)

const (
	observationFile = "observation.png"
	contextFile     = "context.png"
	normalizedFile  = "normalized.csv"
)

// exportJob writes the charts and the normalized rows of one pipeline run.
type exportJob struct {
	Dir    string
	Path   string
	Result *boundary.Result
	Track  *boundary.ContextTrack
	Chart  config.ChartConfig
}

func (j exportJob) fileNames() []string {
	names := []string{observationFile}
	if j.Track != nil {
		names = append(names, contextFile)
	}
	return append(names, normalizedFile)
}

// run renders every file concurrently and returns their paths.
func (j exportJob) run(ctx context.Context) ([]string, error) {
	if j.Result == nil || len(j.Result.Rows) == 0 {
		return nil, errors.New("no windows to export")
	}
	if err := os.MkdirAll(j.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeFileAtomic(ctx, filepath.Join(j.Dir, observationFile), func(w io.Writer) error {
			return chart.RenderObservation(w, j.Result, chart.Options{Width: j.Chart.Width, Height: j.Chart.Height})
		})
	})
	if j.Track != nil {
		g.Go(func() error {
			return writeFileAtomic(ctx, filepath.Join(j.Dir, contextFile), func(w io.Writer) error {
				return chart.RenderContext(w, j.Result, j.Track, chart.Options{Width: j.Chart.Width, Height: j.Chart.ContextHeight})
			})
		})
	}
	g.Go(func() error {
		return writeFileAtomic(ctx, filepath.Join(j.Dir, normalizedFile), func(w io.Writer) error {
			return writeNormalizedCSV(w, j.Result, j.Track)
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, 3)
	for _, name := range j.fileNames() {
		paths = append(paths, filepath.Join(j.Dir, name))
	}
	logging.Infof("export: wrote %d files for %s to %s", len(paths), j.Path, j.Dir)
	return paths, nil
}

// writeFileAtomic renders into a temp file next to path and renames it into
// place, so a failed render never leaves a truncated file behind.
func writeFileAtomic(ctx context.Context, path string, render func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := render(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeNormalizedCSV writes one line per normalized row: bounds, raw flag,
// derived observed value, offsets, the context label when a track is given,
// and the counter columns present in the input.
func writeNormalizedCSV(out io.Writer, res *boundary.Result, ct *boundary.ContextTrack) error {
	w := csv.NewWriter(out)

	var counters []string
	for _, c := range boundary.CounterColumns {
		if res.HasColumn(c) {
			counters = append(counters, c)
		}
	}

	header := []string{
		boundary.ColumnWindowStart, boundary.ColumnWindowEnd, res.FlagColumn,
		"observed", "offset_start", "offset_end", "duration",
	}
	if ct != nil {
		header = append(header, ct.Column)
	}
	header = append(header, counters...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range res.Rows {
		rec := []string{
			boundary.FormatTimestamp(r.Start),
			boundary.FormatTimestamp(r.End),
			res.Value(r, res.FlagColumn),
			strconv.FormatBool(r.Observed),
			formatSeconds(r.OffsetStart),
			formatSeconds(r.OffsetEnd),
			formatSeconds(r.Duration),
		}
		if ct != nil {
			rec = append(rec, ct.Labels[i])
		}
		for _, c := range counters {
			rec = append(rec, res.Value(r, c))
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r.Source, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
