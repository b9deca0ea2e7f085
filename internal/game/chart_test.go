package game

import (
	"testing"
	"time"
)

func TestLastEnd(t *testing.T) {
	tests := map[time.Duration]*Chart{
		0: Empty(),
		3 * time.Second: {LaneCount: 4, Notes: []Note{
			{Time: 1 * time.Second, Lane: 0},
			{Time: 3 * time.Second, Lane: 1},
		}},
		// The sustain tail of an earlier note can outlast the last tap.
		4 * time.Second: {LaneCount: 4, Notes: []Note{
			{Time: 1 * time.Second, Lane: 0, Sustain: 3 * time.Second},
			{Time: 3 * time.Second, Lane: 1},
		}},
	}
	for expected, chart := range tests {
		if out := chart.LastEnd(); out != expected {
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestEmptyIsPlayable(t *testing.T) {
	c := Empty()
	if c.LaneCount != 4 || c.BPM != 120 || len(c.Notes) != 0 {
		t.Log("chart", c)
		t.Fail()
	}
}
