package model

import (
	"sort"
	"time"
)

// Point is a single (timestamp, count) pair of the velocity series.
type Point struct {
	Time  time.Time
	Count int
}

// Histogram counts events per whole-second timestamp. It remembers the order
// in which each second was first seen.
type Histogram struct {
	loc    *time.Location
	counts map[int64]int
	order  []int64

	Stats Stats
}

// NewHistogram creates an empty histogram whose timestamps are presented in loc.
// A nil loc means time.Local.
func NewHistogram(loc *time.Location) *Histogram {
	if loc == nil {
		loc = time.Local
	}
	return &Histogram{
		loc:    loc,
		counts: make(map[int64]int),
	}
}

// Add counts one event at t. Sub-second precision is dropped.
func (h *Histogram) Add(t time.Time) {
	h.AddUnix(t.Unix())
}

// AddUnix counts one event at the given epoch second.
func (h *Histogram) AddUnix(sec int64) {
	if _, ok := h.counts[sec]; !ok {
		h.order = append(h.order, sec)
	}
	h.counts[sec]++
}

// Count returns the number of events recorded for the second containing t.
func (h *Histogram) Count(t time.Time) int {
	return h.counts[t.Unix()]
}

// Len returns the number of distinct seconds.
func (h *Histogram) Len() int {
	return len(h.order)
}

// Total returns the sum of all counts.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Location returns the time zone used for presented timestamps.
func (h *Histogram) Location() *time.Location {
	return h.loc
}

// Points returns the series in the requested order.
func (h *Histogram) Points(order Order) []Point {
	keys := make([]int64, len(h.order))
	copy(keys, h.order)

	if order == OrderChronological {
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	}

	points := make([]Point, 0, len(keys))
	for _, sec := range keys {
		points = append(points, Point{
			Time:  time.Unix(sec, 0).In(h.loc),
			Count: h.counts[sec],
		})
	}
	return points
}

// Span returns the earliest and latest timestamps. ok is false when the
// histogram is empty.
func (h *Histogram) Span() (start, end time.Time, ok bool) {
	if len(h.order) == 0 {
		return time.Time{}, time.Time{}, false
	}

	minSec, maxSec := h.order[0], h.order[0]
	for _, sec := range h.order[1:] {
		if sec < minSec {
			minSec = sec
		}
		if sec > maxSec {
			maxSec = sec
		}
	}
	return time.Unix(minSec, 0).In(h.loc), time.Unix(maxSec, 0).In(h.loc), true
}

// Peak returns the highest per-second count.
func (h *Histogram) Peak() int {
	peak := 0
	for _, c := range h.counts {
		if c > peak {
			peak = c
		}
	}
	return peak
}
