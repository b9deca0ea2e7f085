package parser

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"git.lost.host/meutraa/eotf/internal/game"
)

type DefaultParser struct{}

func msToDuration(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

func durationToMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// number enforces that an optional field, when present, is numeric.
func number(r gjson.Result, fallback float64) (float64, error) {
	if !r.Exists() {
		return fallback, nil
	}
	if r.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedChart, r.Raw)
	}
	return r.Float(), nil
}

func (p *DefaultParser) Parse(doc []byte) (*game.Chart, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedChart)
	}
	root := gjson.ParseBytes(doc)
	var chart *game.Chart
	var err error
	if root.Get("song").IsObject() {
		chart, err = p.parseSectioned(root)
	} else {
		chart, err = p.parseSimple(root)
	}
	if nil != err {
		return nil, err
	}
	sort.SliceStable(chart.Notes, func(i, j int) bool {
		return chart.Notes[i].Time < chart.Notes[j].Time
	})
	return chart, nil
}

// Simple shape: a flat object with lanes, bpm, title, artist and a list
// of {time, lane, sustain?} notes.
func (p *DefaultParser) parseSimple(root gjson.Result) (*game.Chart, error) {
	lanes, err := number(root.Get("lanes"), 4)
	if nil != err {
		return nil, err
	}
	if lanes < 1 {
		return nil, fmt.Errorf("%w: lane count %v", ErrMalformedChart, lanes)
	}
	bpm, err := number(root.Get("bpm"), 120)
	if nil != err {
		return nil, err
	}
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: bpm %v", ErrMalformedChart, bpm)
	}

	chart := &game.Chart{
		LaneCount: int(lanes),
		Title:     root.Get("title").String(),
		Artist:    root.Get("artist").String(),
		BPM:       bpm,
	}
	for _, n := range root.Get("notes").Array() {
		t := n.Get("time")
		lane := n.Get("lane")
		if t.Type != gjson.Number || lane.Type != gjson.Number {
			return nil, fmt.Errorf("%w: note %s", ErrMalformedChart, n.Raw)
		}
		sustain, err := number(n.Get("sustain"), 0)
		if nil != err || sustain < 0 {
			return nil, fmt.Errorf("%w: sustain in note %s", ErrMalformedChart, n.Raw)
		}
		li := int(lane.Int())
		if li < 0 || li >= chart.LaneCount {
			return nil, fmt.Errorf("%w: lane %v out of range", ErrMalformedChart, li)
		}
		chart.Notes = append(chart.Notes, game.Note{
			Time:    msToDuration(t.Float()),
			Lane:    li,
			Sustain: msToDuration(sustain),
		})
	}
	return chart, nil
}

// Sectioned shape: a song object holding sections, each with tuple
// entries [time, laneRaw, ?, sustain?]. Output is always 4 lanes and
// the raw lane index wraps around.
func (p *DefaultParser) parseSectioned(root gjson.Result) (*game.Chart, error) {
	song := root.Get("song")
	bpm, err := number(song.Get("bpm"), 120)
	if nil != err {
		return nil, err
	}
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: bpm %v", ErrMalformedChart, bpm)
	}
	chart := &game.Chart{
		LaneCount: 4,
		Title:     song.Get("song").String(),
		Artist:    song.Get("artist").String(),
		BPM:       bpm,
	}
	for _, sec := range song.Get("notes").Array() {
		for _, entry := range sec.Get("sectionNotes").Array() {
			if !entry.IsArray() {
				continue
			}
			tuple := entry.Array()
			if len(tuple) < 2 {
				continue
			}
			if tuple[0].Type != gjson.Number || tuple[1].Type != gjson.Number {
				return nil, fmt.Errorf("%w: entry %s", ErrMalformedChart, entry.Raw)
			}
			sustain := 0.0
			if len(tuple) > 3 {
				if tuple[3].Type != gjson.Number {
					return nil, fmt.Errorf("%w: sustain in entry %s", ErrMalformedChart, entry.Raw)
				}
				sustain = tuple[3].Float()
			}
			lane := int(tuple[1].Int()) % 4
			if lane < 0 {
				lane += 4
			}
			chart.Notes = append(chart.Notes, game.Note{
				Time:    msToDuration(tuple[0].Float()),
				Lane:    lane,
				Sustain: msToDuration(sustain),
			})
		}
	}
	return chart, nil
}

type noteDoc struct {
	Time    float64 `json:"time"`
	Lane    int     `json:"lane"`
	Sustain float64 `json:"sustain"`
}

func (p *DefaultParser) Serialize(chart *game.Chart, id, audioMode string) ([]byte, error) {
	notes := make([]noteDoc, len(chart.Notes))
	for i, n := range chart.Notes {
		notes[i] = noteDoc{
			Time:    durationToMs(n.Time),
			Lane:    n.Lane,
			Sustain: durationToMs(n.Sustain),
		}
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Time < notes[j].Time })

	doc := "{}"
	var err error
	for _, set := range []struct {
		path  string
		value interface{}
	}{
		{"id", id},
		{"title", chart.Title},
		{"artist", chart.Artist},
		{"bpm", chart.BPM},
		{"lanes", chart.LaneCount},
		{"audioMode", audioMode},
		{"notes", notes},
	} {
		if set.path == "audioMode" && audioMode == "" {
			continue
		}
		doc, err = sjson.Set(doc, set.path, set.value)
		if nil != err {
			return nil, err
		}
	}
	return []byte(doc), nil
}
