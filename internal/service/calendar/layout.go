// Package calendar turns a day's shifts into collision-free column geometry.
// Everything here is pure: callers pass shifts in and get positions out.
// Nothing in this package touches storage or knows who renders the boxes.
package calendar

import (
	"sort"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
)

// Config holds the time-axis geometry knobs.
type Config struct {
	// DayStartHour is the first hour shown on the axis.
	DayStartHour int
	// PixelsPerHour scales duration to height.
	PixelsPerHour float64
	// MinEventPixels keeps very short shifts clickable.
	MinEventPixels float64
	// SnapMinutes is the drag/resize granularity.
	SnapMinutes int
}

func DefaultConfig() Config {
	return Config{
		DayStartHour:   6,
		PixelsPerHour:  60,
		MinEventPixels: 30,
		SnapMinutes:    15,
	}
}

// Group is one visual calendar event: every shift of an account sharing the
// exact same scheduled window, rendered as a single card with a roster.
type Group struct {
	AccountID   string
	AccountName string
	Start       time.Time
	End         time.Time
	Shifts      []shift.Shift
	Status      shift.Status

	// Column placement, filled by AssignColumns.
	Column  int
	Columns int
}

// Box is a resolved card position. Top and Height are pixels; Left and Width
// are percentages of the day column.
type Box struct {
	Top    float64
	Height float64
	Left   float64
	Width  float64
}

// PositionedGroup is a group with its geometry resolved.
type PositionedGroup struct {
	Group
	Box Box
}

// GroupShifts collapses shifts into visual groups keyed by account and exact
// scheduled window, ordered by start time then account name.
func GroupShifts(shifts []shift.Shift) []Group {
	type key struct {
		accountID  string
		start, end int64
	}

	index := make(map[key]int)
	var groups []Group
	for _, sh := range shifts {
		k := key{sh.AccountID, sh.ScheduledStart.Unix(), sh.ScheduledEnd.Unix()}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{
				AccountID:   sh.AccountID,
				AccountName: sh.AccountName,
				Start:       sh.ScheduledStart,
				End:         sh.ScheduledEnd,
			})
		}
		groups[i].Shifts = append(groups[i].Shifts, sh)
	}

	for i := range groups {
		groups[i].Status = aggregateStatus(groups[i].Shifts)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].Start.Equal(groups[j].Start) {
			return groups[i].Start.Before(groups[j].Start)
		}
		return groups[i].AccountName < groups[j].AccountName
	})

	return groups
}

// aggregateStatus rolls a roster up to one card status: done only when
// everyone is done, in progress as soon as anyone starts.
func aggregateStatus(shifts []shift.Shift) shift.Status {
	allCompleted := len(shifts) > 0
	anyStarted := false
	for _, sh := range shifts {
		if sh.Status != shift.StatusCompleted {
			allCompleted = false
		}
		if sh.Status == shift.StatusStarted {
			anyStarted = true
		}
	}
	if allCompleted {
		return shift.StatusCompleted
	}
	if anyStarted {
		return shift.StatusStarted
	}
	return shift.StatusScheduled
}

// AssignColumns places groups into side-by-side columns so overlapping cards
// never share one. Greedy first fit over start-ordered groups: a group takes
// the leftmost column that is free by its start time, which uses exactly as
// many columns as the worst simultaneous overlap. Groups must be ordered by
// start time, as GroupShifts returns them.
func AssignColumns(groups []Group) []Group {
	var (
		colEnds []time.Time // last occupied end per column, current cluster
		cluster []int       // indices of the current overlap cluster
	)

	flush := func() {
		for _, i := range cluster {
			groups[i].Columns = len(colEnds)
		}
		colEnds = colEnds[:0]
		cluster = cluster[:0]
	}

	for i := range groups {
		g := &groups[i]

		// A gap with no active card ends the cluster, so widths reset
		// instead of the whole day sharing the worst hour's columns.
		free := true
		for _, end := range colEnds {
			if end.After(g.Start) {
				free = false
				break
			}
		}
		if free && len(cluster) > 0 {
			flush()
		}

		placed := false
		for c := range colEnds {
			if !colEnds[c].After(g.Start) {
				colEnds[c] = g.End
				g.Column = c
				placed = true
				break
			}
		}
		if !placed {
			colEnds = append(colEnds, g.End)
			g.Column = len(colEnds) - 1
		}
		cluster = append(cluster, i)
	}
	flush()

	return groups
}

// Geometry resolves one group's card position on the day axis. Cards are
// clamped to a minimum height so short visits stay visible, and a group
// ending past midnight keeps its full height on the starting day.
func Geometry(g Group, cfg Config) Box {
	y, m, d := g.Start.Date()
	axisStart := time.Date(y, m, d, cfg.DayStartHour, 0, 0, 0, g.Start.Location())

	top := g.Start.Sub(axisStart).Hours() * cfg.PixelsPerHour
	height := g.End.Sub(g.Start).Hours() * cfg.PixelsPerHour
	if height < cfg.MinEventPixels {
		height = cfg.MinEventPixels
	}

	columns := g.Columns
	if columns < 1 {
		columns = 1
	}
	width := 100.0 / float64(columns)

	return Box{
		Top:    top,
		Height: height,
		Left:   width * float64(g.Column),
		Width:  width,
	}
}

// Snap rounds t to the nearest snap boundary.
func Snap(t time.Time, snapMinutes int) time.Time {
	if snapMinutes <= 0 {
		return t
	}
	return t.Round(time.Duration(snapMinutes) * time.Minute)
}

// LayoutDay is the composed day-view projection: group, place, measure.
func LayoutDay(shifts []shift.Shift, cfg Config) []PositionedGroup {
	groups := AssignColumns(GroupShifts(shifts))

	positioned := make([]PositionedGroup, 0, len(groups))
	for _, g := range groups {
		positioned = append(positioned, PositionedGroup{
			Group: g,
			Box:   Geometry(g, cfg),
		})
	}
	return positioned
}
