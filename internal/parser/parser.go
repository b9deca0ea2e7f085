package parser

import (
	"errors"

	"git.lost.host/meutraa/eotf/internal/game"
)

// ErrMalformedChart marks a source document that cannot be normalized.
// Callers recover by substituting game.Empty(), never by failing the host.
var ErrMalformedChart = errors.New("malformed chart")

type Parser interface {
	// Parse converts a raw chart document into a normalized Chart.
	// Both the simple shape and the sectioned shape are auto-detected.
	Parse(doc []byte) (*game.Chart, error)

	// Serialize writes a Chart back out in the simple shape. A chart
	// produced by Parse must round-trip through Serialize losslessly.
	Serialize(chart *game.Chart, id, audioMode string) ([]byte, error)
}

// MergeMeta fills empty chart metadata from a separately loaded song
// metadata record. Parsed values win whenever they are non-empty. Parse
// always emits a positive BPM; the zero branch covers charts built
// directly, like the empty fallback.
func MergeMeta(c *game.Chart, title, artist string, bpm float64) {
	if c.Title == "" {
		c.Title = title
	}
	if c.Artist == "" {
		c.Artist = artist
	}
	if c.BPM == 0 {
		c.BPM = bpm
	}
}
