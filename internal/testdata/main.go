package testdata

import (
	"time"

	"git.lost.host/meutraa/eotf/internal/game"
)

// Doc is a simple shape chart document matching GetChart.
const Doc = `{
  "id": "fixture",
  "title": "Fixture",
  "artist": "Unknown",
  "bpm": 120,
  "lanes": 4,
  "notes": [
    {"time": 1000, "lane": 0},
    {"time": 1250, "lane": 1},
    {"time": 1500, "lane": 2},
    {"time": 1750, "lane": 3},
    {"time": 2200, "lane": 0, "sustain": 400},
    {"time": 3000, "lane": 1},
    {"time": 3250, "lane": 2},
    {"time": 3500, "lane": 3}
  ]
}`

func GetChart() *game.Chart {
	return &game.Chart{
		LaneCount: 4,
		Title:     "Fixture",
		Artist:    "Unknown",
		BPM:       120,
		Notes: []game.Note{
			{Time: 1000 * time.Millisecond, Lane: 0},
			{Time: 1250 * time.Millisecond, Lane: 1},
			{Time: 1500 * time.Millisecond, Lane: 2},
			{Time: 1750 * time.Millisecond, Lane: 3},
			{Time: 2200 * time.Millisecond, Lane: 0, Sustain: 400 * time.Millisecond},
			{Time: 3000 * time.Millisecond, Lane: 1},
			{Time: 3250 * time.Millisecond, Lane: 2},
			{Time: 3500 * time.Millisecond, Lane: 3},
		},
	}
}
