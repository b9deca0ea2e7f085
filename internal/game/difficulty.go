package game

import (
	"time"
)

type Difficulty struct {
	Name        string
	HitWindow   time.Duration
	ScrollSpeed float64
}

var DifficultyNames = []string{"easy", "normal", "hard"}

// ForDifficulty derives the timing window and scroll speed for a chart.
// The base speed scales with bpm; the multipliers are part of the
// scoring contract and must not drift.
func ForDifficulty(name string, bpm float64) Difficulty {
	base := 0.45 + bpm/300.0
	switch name {
	case "easy":
		return Difficulty{Name: name, HitWindow: 160 * time.Millisecond, ScrollSpeed: base * 0.9}
	case "hard":
		return Difficulty{Name: name, HitWindow: 90 * time.Millisecond, ScrollSpeed: base * 1.1}
	}
	return Difficulty{Name: "normal", HitWindow: 120 * time.Millisecond, ScrollSpeed: base}
}
