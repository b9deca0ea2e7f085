package parser

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"git.lost.host/meutraa/eotf/internal/game"
	"git.lost.host/meutraa/eotf/internal/testdata"
)

func TestParseSimple(t *testing.T) {
	p := &DefaultParser{}
	out, err := p.Parse([]byte(testdata.Doc))
	if nil != err {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, testdata.GetChart()) {
		t.Log("out     ", out)
		t.Log("expected", testdata.GetChart())
		t.Fail()
	}
}

func TestParseSimpleDefaults(t *testing.T) {
	p := &DefaultParser{}
	out, err := p.Parse([]byte(`{"notes": []}`))
	if nil != err {
		t.Fatal(err)
	}
	if out.LaneCount != 4 || out.BPM != 120 || len(out.Notes) != 0 {
		t.Log("out", out)
		t.Fail()
	}
}

func TestParseSectioned(t *testing.T) {
	doc := `{"song": {
		"song": "Sectioned",
		"artist": "Someone",
		"bpm": 140,
		"notes": [
			{"sectionNotes": [[1000, 0, 0], [1250, 5, 0]]},
			{"sectionNotes": [[1500, 7, 0, 400]]}
		]
	}}`
	p := &DefaultParser{}
	out, err := p.Parse([]byte(doc))
	if nil != err {
		t.Fatal(err)
	}
	expected := &game.Chart{
		LaneCount: 4,
		Title:     "Sectioned",
		Artist:    "Someone",
		BPM:       140,
		Notes: []game.Note{
			{Time: 1000 * time.Millisecond, Lane: 0},
			{Time: 1250 * time.Millisecond, Lane: 1},
			{Time: 1500 * time.Millisecond, Lane: 3, Sustain: 400 * time.Millisecond},
		},
	}
	if !reflect.DeepEqual(out, expected) {
		t.Log("out     ", out)
		t.Log("expected", expected)
		t.Fail()
	}
}

var malformedTests = map[string]string{
	"invalid json":      `{`,
	"string note time":  `{"notes": [{"time": "soon", "lane": 0}]}`,
	"missing note lane": `{"notes": [{"time": 100}]}`,
	"lane out of range": `{"notes": [{"time": 100, "lane": 4}]}`,
	"negative lane":     `{"notes": [{"time": 100, "lane": -1}]}`,
	"negative sustain":  `{"notes": [{"time": 100, "lane": 0, "sustain": -5}]}`,
	"zero bpm":          `{"bpm": 0, "notes": []}`,
	"zero lanes":        `{"lanes": 0, "notes": []}`,
	"string tuple time": `{"song": {"notes": [{"sectionNotes": [["soon", 0]]}]}}`,
}

func TestParseMalformed(t *testing.T) {
	p := &DefaultParser{}
	for name, doc := range malformedTests {
		out, err := p.Parse([]byte(doc))
		if !errors.Is(err, ErrMalformedChart) {
			t.Log("name", name)
			t.Log("out ", out)
			t.Log("err ", err)
			t.Fail()
		}
	}
}

func TestParseSortsNotes(t *testing.T) {
	doc := `{"notes": [
		{"time": 3000, "lane": 0},
		{"time": 1000, "lane": 1},
		{"time": 2000, "lane": 2}
	]}`
	p := &DefaultParser{}
	out, err := p.Parse([]byte(doc))
	if nil != err {
		t.Fatal(err)
	}
	for i := 1; i < len(out.Notes); i++ {
		if out.Notes[i-1].Time > out.Notes[i].Time {
			t.Log("notes", out.Notes)
			t.Fail()
			break
		}
	}
}

func TestParseKeepsSourceOrderOnTies(t *testing.T) {
	doc := `{"notes": [
		{"time": 2000, "lane": 3},
		{"time": 1000, "lane": 2},
		{"time": 1000, "lane": 1}
	]}`
	p := &DefaultParser{}
	out, err := p.Parse([]byte(doc))
	if nil != err {
		t.Fatal(err)
	}
	// Equal-time notes keep their source order; the sort is stable.
	expected := []game.Note{
		{Time: 1000 * time.Millisecond, Lane: 2},
		{Time: 1000 * time.Millisecond, Lane: 1},
		{Time: 2000 * time.Millisecond, Lane: 3},
	}
	if !reflect.DeepEqual(out.Notes, expected) {
		t.Log("out     ", out.Notes)
		t.Log("expected", expected)
		t.Fail()
	}
}

func TestRoundTrip(t *testing.T) {
	p := &DefaultParser{}
	chart := testdata.GetChart()
	doc, err := p.Serialize(chart, "fixture", "")
	if nil != err {
		t.Fatal(err)
	}
	if gjson.GetBytes(doc, "audioMode").Exists() {
		t.Log("audioMode should be omitted when empty")
		t.Fail()
	}
	out, err := p.Parse(doc)
	if nil != err {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, chart) {
		t.Log("out     ", out)
		t.Log("expected", chart)
		t.Fail()
	}
}

func TestSerializeAudioMode(t *testing.T) {
	p := &DefaultParser{}
	doc, err := p.Serialize(game.Empty(), "empty", "bg+voice")
	if nil != err {
		t.Fatal(err)
	}
	if gjson.GetBytes(doc, "audioMode").String() != "bg+voice" {
		t.Log("doc", string(doc))
		t.Fail()
	}
}

func TestMergeMeta(t *testing.T) {
	c := &game.Chart{Title: "Kept"}
	MergeMeta(c, "Fallback", "Artist", 150)
	if c.Title != "Kept" || c.Artist != "Artist" || c.BPM != 150 {
		t.Log("chart", c)
		t.Fail()
	}

	// A directly built chart can carry a zero BPM; the record fills it.
	bare := &game.Chart{}
	MergeMeta(bare, "Fallback", "Artist", 150)
	if bare.Title != "Fallback" || bare.Artist != "Artist" || bare.BPM != 150 {
		t.Log("chart", bare)
		t.Fail()
	}
}
