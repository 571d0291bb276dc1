package main

import (
	"slices"

	"github.com/andareed/siftly-obsmap/boundary"
)

type ColumnRole int

const (
	RoleCounter ColumnRole = iota
	RoleTime
	RoleFlag
)

type ColumnMeta struct {
	Name     string
	Index    int
	Role     ColumnRole
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

func detectRole(name string) ColumnRole {
	switch {
	case name == boundary.ColumnWindowStart || name == boundary.ColumnWindowEnd:
		return RoleTime
	case slices.Contains(boundary.FlagColumns, name):
		return RoleFlag
	default:
		return RoleCounter
	}
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RoleTime:
		// "2026-01-20 09:00:00+00:00" plus cell padding
		return 27
	case RoleFlag:
		return 12
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RoleTime:
		return 1.0
	case RoleFlag:
		return 2.0
	default:
		return 1.0
	}
}

func columnsFor(names []string) []ColumnMeta {
	cols := make([]ColumnMeta, len(names))
	for i, name := range names {
		role := detectRole(name)
		cols[i] = ColumnMeta{
			Name:     name,
			Index:    i,
			Role:     role,
			Visible:  true,
			MinWidth: max(defaultMinWidthForRole(role), len(name)+2),
			Weight:   defaultWeightForRole(role),
		}
	}
	return cols
}

// layoutColumns gives each visible column its minimum width and shares what is
// left of totalWidth by weight.
func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		// too tight: drop trailing counters until the rest fits
		for i := len(cols) - 1; i >= 0 && minSum > totalWidth; i-- {
			if cols[i].Visible && cols[i].Role == RoleCounter {
				cols[i].Visible = false
				cols[i].Width = 0
				minSum -= cols[i].MinWidth
			}
		}
		for i := range cols {
			if cols[i].Visible {
				cols[i].Width = min(cols[i].MinWidth, totalWidth)
			}
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
