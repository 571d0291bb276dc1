package main

import (
	"errors"
	"slices"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/csvsource"
	"github.com/andareed/siftly-obsmap/logging"
)

// dataState is one run of the pipeline: the loaded table, the column choices
// and everything derived from them.
type dataState struct {
	path         string
	table        *boundary.Table
	flag         string
	context      string
	previewLimit int

	result  *boundary.Result
	track   *boundary.ContextTrack
	preview boundary.Preview

	// err is the schema error of the last run; result is nil when set.
	err error
	// contextErr disables the context track but keeps the result.
	contextErr error
}

func newDataState(path string, t *boundary.Table, flag, context string, previewLimit int) *dataState {
	d := &dataState{path: path, previewLimit: previewLimit}
	d.setTable(t, flag, context)
	return d
}

// reload reads the CSV again keeping the current column choices.
func (d *dataState) reload() error {
	t, err := csvsource.Load(d.path)
	if err != nil {
		return err
	}
	d.setTable(t, d.flag, d.context)
	return nil
}

// setTable swaps in a freshly read table. Empty column choices fall back to the
// first known column the table has. A flag the table lacks is kept so the
// schema error is shown rather than silently replaced.
func (d *dataState) setTable(t *boundary.Table, flag, context string) {
	d.table = t
	if flag == "" {
		flag = boundary.DetectFlagColumn(t)
	}
	d.flag = flag

	if context == "" {
		context = boundary.NoContext
		if avail := boundary.AvailableContextColumns(t); len(avail) > 0 {
			context = avail[0]
		}
	}
	d.context = context
	d.recompute()
}

// recompute reruns normalization and context bucketing for the current choices.
func (d *dataState) recompute() {
	d.result, d.track, d.err, d.contextErr = nil, nil, nil, nil
	d.preview = boundary.Preview{}

	res, err := boundary.Normalize(d.table, d.flag)
	if err != nil {
		logging.Warnf("normalize %s with flag %q: %v", d.path, d.flag, err)
		d.err = err
		return
	}
	d.result = res
	d.preview = res.Preview(d.previewLimit)

	ct, err := res.BucketByContext(d.context)
	if err != nil {
		logging.Warnf("context %q: %v", d.context, err)
		d.contextErr = err
		return
	}
	d.track = ct
	logging.Debugf("recompute: flag=%s context=%s total=%d observed=%d dropped=%d",
		d.flag, d.context, res.Summary.Total, res.Summary.Observed, res.Dropped)
}

func (d *dataState) flagOptions() []string {
	if d.table == nil {
		return nil
	}
	return boundary.AvailableFlagColumns(d.table)
}

// contextOptions lists the context columns present, then NoContext.
func (d *dataState) contextOptions() []string {
	if d.table == nil {
		return []string{boundary.NoContext}
	}
	return append(boundary.AvailableContextColumns(d.table), boundary.NoContext)
}

func (d *dataState) setFlag(flag string) {
	d.flag = flag
	d.recompute()
}

func (d *dataState) setContext(context string) {
	d.context = context
	d.recompute()
}

// cycleFlag moves to the next flag column. It reports false when there is
// nothing else to pick.
func (d *dataState) cycleFlag() bool {
	next, ok := cycle(d.flagOptions(), d.flag)
	if !ok {
		return false
	}
	d.setFlag(next)
	return true
}

func (d *dataState) cycleContext() bool {
	next, ok := cycle(d.contextOptions(), d.context)
	if !ok {
		return false
	}
	d.setContext(next)
	return true
}

func cycle(options []string, current string) (string, bool) {
	if len(options) == 0 {
		return "", false
	}
	i := slices.Index(options, current)
	next := options[(i+1)%len(options)]
	if next == current {
		return "", false
	}
	return next, true
}

func (d *dataState) isSchemaError() bool {
	return errors.Is(d.err, boundary.ErrMissingColumn)
}
