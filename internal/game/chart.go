package game

import (
	"time"
)

// Chart is the normalized representation of one playable song.
// Notes are always sorted ascending by Time, stable with respect to
// source order, and every Lane is within [0, LaneCount).
type Chart struct {
	LaneCount int
	Notes     []Note
	Title     string
	Artist    string
	BPM       float64
}

// Empty returns a playable chart with no notes. Missing or malformed
// sources fall back to this rather than failing the host.
func Empty() *Chart {
	return &Chart{LaneCount: 4, BPM: 120}
}

// LastEnd is the time the final note (including sustain) passes.
func (c *Chart) LastEnd() time.Duration {
	var last time.Duration
	for i := range c.Notes {
		if end := c.Notes[i].End(); end > last {
			last = end
		}
	}
	return last
}
