package score

import (
	"time"
)

// Result is one finished session's outcome.
type Result struct {
	SongID     string
	Difficulty string
	Hits       int
	Misses     int
	MaxCombo   int
	PlayedAt   time.Time
}

// Accuracy is hits over judged notes, 0..1.
func (r Result) Accuracy() float64 {
	total := r.Hits + r.Misses
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total)
}

type Scorer interface {
	Init() error
	Deinit()

	// Save the outcome of a finished session
	Save(r Result)

	// Best returns the highest-accuracy result for a song
	Best(songID string) (Result, bool)
}
