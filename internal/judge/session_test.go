package judge

import (
	"math"
	"testing"
	"time"

	"git.lost.host/meutraa/eotf/internal/game"
	"git.lost.host/meutraa/eotf/internal/testdata"
)

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func newChart(notes ...game.Note) *game.Chart {
	return &game.Chart{LaneCount: 4, BPM: 120, Notes: notes}
}

func normal() game.Difficulty { return game.ForDifficulty("normal", 120) }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// The normal window is 120ms either side of the note.
var hitWindowTests = map[time.Duration]bool{
	ms(879):  false,
	ms(880):  true,
	ms(1000): true,
	ms(1120): true,
	ms(1121): false,
}

func TestHitWindowBounds(t *testing.T) {
	for at, expected := range hitWindowTests {
		s := NewSession(newChart(game.Note{Time: ms(1000), Lane: 0}), normal(), Options{})
		if out := s.AttemptHit(0, at); out != expected {
			t.Log("at      ", at)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestHitConsumesNote(t *testing.T) {
	s := NewSession(newChart(game.Note{Time: ms(1000), Lane: 0}), normal(), Options{})
	if !s.AttemptHit(0, ms(1000)) {
		t.Fatal("first press should land")
	}
	if s.AttemptHit(0, ms(1010)) {
		t.Log("second press landed on a consumed note")
		t.Fail()
	}
	if s.Hits() != 1 || s.Combo() != 1 || !near(s.Health(), 0.53) {
		t.Log("hits", s.Hits(), "combo", s.Combo(), "health", s.Health())
		t.Fail()
	}
}

func TestWrongLaneDoesNotLand(t *testing.T) {
	s := NewSession(newChart(game.Note{Time: ms(1000), Lane: 0}), normal(), Options{})
	if s.AttemptHit(1, ms(1000)) {
		t.Fail()
	}
}

func TestEarliestNoteWins(t *testing.T) {
	s := NewSession(newChart(
		game.Note{Time: ms(1000), Lane: 0},
		game.Note{Time: ms(1040), Lane: 0},
	), normal(), Options{})
	// 1050 is nearer the second note; the earlier one is judged anyway.
	if !s.AttemptHit(0, ms(1050)) {
		t.Fatal("press inside both windows should land")
	}
	if s.NoteState(0) != game.Hit || s.NoteState(1) != game.Pending {
		t.Log("states", s.NoteState(0), s.NoteState(1))
		t.Fail()
	}
}

func TestDuplicateNotesJudgedIndependently(t *testing.T) {
	duplicates := newChart(
		game.Note{Time: ms(1000), Lane: 0},
		game.Note{Time: ms(1000), Lane: 0},
	)

	s := NewSession(duplicates, normal(), Options{})
	if !s.AttemptHit(0, ms(1000)) || !s.AttemptHit(0, ms(1000)) {
		t.Fatal("each press should land on its own note")
	}
	if s.Hits() != 2 || s.NoteState(0) != game.Hit || s.NoteState(1) != game.Hit {
		t.Log("hits", s.Hits(), "states", s.NoteState(0), s.NoteState(1))
		t.Fail()
	}

	// With a single press the twin survives and is swept as a miss.
	s = NewSession(duplicates, normal(), Options{})
	if !s.AttemptHit(0, ms(1000)) {
		t.Fatal("press should land")
	}
	tick := s.Advance(ms(1121), nil)
	if len(tick.Missed) != 1 || s.Hits() != 1 || s.Misses() != 1 {
		t.Log("tick", tick, "hits", s.Hits(), "misses", s.Misses())
		t.Fail()
	}
}

func TestMissSweep(t *testing.T) {
	s := NewSession(newChart(game.Note{Time: ms(1000), Lane: 0}), normal(), Options{})
	tick := s.Advance(ms(1120), nil)
	if !tick.Started || len(tick.Missed) != 0 {
		t.Log("tick", tick)
		t.Fail()
	}
	tick = s.Advance(ms(1), nil)
	if len(tick.Missed) != 1 || tick.Missed[0] != 0 {
		t.Log("tick", tick)
		t.Fail()
	}
	if s.Misses() != 1 || s.Combo() != 0 || !near(s.Health(), 0.44) {
		t.Log("misses", s.Misses(), "combo", s.Combo(), "health", s.Health())
		t.Fail()
	}
	if s.NoteState(0) != game.Missed {
		t.Fail()
	}
}

func TestMissedNoteCannotBeHit(t *testing.T) {
	s := NewSession(newChart(game.Note{Time: ms(50), Lane: 0}), normal(), Options{})
	tick := s.Advance(ms(200), nil)
	if len(tick.Missed) != 1 {
		t.Fatal("note before the window should be swept")
	}
	if s.AttemptHit(0, ms(160)) {
		t.Fail()
	}
}

func TestGhostTapKeepsCombo(t *testing.T) {
	s := NewSession(newChart(game.Note{Time: ms(1000), Lane: 0}), normal(), Options{})
	s.AttemptHit(0, ms(1000))
	s.GhostTap()
	if s.Combo() != 1 || s.Misses() != 1 || !near(s.Health(), 0.48) {
		t.Log("combo", s.Combo(), "misses", s.Misses(), "health", s.Health())
		t.Fail()
	}
}

func TestHPMultiplierScalesLosses(t *testing.T) {
	s := NewSession(newChart(game.Note{Time: ms(50), Lane: 0}), normal(), Options{HPMultiplier: 2})
	s.Advance(ms(200), nil)
	if !near(s.Health(), 0.38) {
		t.Log("health", s.Health())
		t.Fail()
	}
}

func TestSustainHoldHealsDropDrains(t *testing.T) {
	chart := newChart(game.Note{Time: ms(1000), Lane: 0, Sustain: ms(600)})

	held := NewSession(chart, normal(), Options{})
	held.Advance(ms(1000), nil)
	if !held.AttemptHit(0, held.Elapsed()) {
		t.Fatal("sustain head should land")
	}
	if held.SustainEnd(0) != ms(1600) {
		t.Log("sustain end", held.SustainEnd(0))
		t.Fail()
	}

	dropped := NewSession(chart, normal(), Options{})
	dropped.Advance(ms(1000), nil)
	dropped.AttemptHit(0, dropped.Elapsed())

	held.Advance(ms(500), []bool{true, false, false, false})
	dropped.Advance(ms(500), nil)

	// 0.5 + 0.03 + 0.24*0.5 held, 0.5 + 0.03 - 0.6*0.5 dropped.
	if !near(held.Health(), 0.65) || !near(dropped.Health(), 0.23) {
		t.Log("held   ", held.Health())
		t.Log("dropped", dropped.Health())
		t.Fail()
	}

	held.Advance(ms(200), []bool{true, false, false, false})
	if held.SustainEnd(0) != 0 {
		t.Log("sustain should clear past its end")
		t.Fail()
	}
}

func TestOpponentMirrorsNotes(t *testing.T) {
	s := NewSession(newChart(game.Note{Time: ms(1000), Lane: 1}), normal(), Options{Opponent: true})
	opp, consumed := s.Opponent()
	if len(opp) != 1 || opp[0].Lane != 3 || opp[0].Time != ms(1000) {
		t.Log("opponent", opp)
		t.Fail()
	}
	tick := s.Advance(ms(900), nil)
	if tick.OpponentHits != 1 || !consumed[0] || !near(s.Health(), 0.47) {
		t.Log("tick", tick, "health", s.Health())
		t.Fail()
	}
	// The player note is untouched by the opponent sweep.
	if s.NoteState(0) != game.Pending {
		t.Fail()
	}
}

func TestEmptyChartFinishes(t *testing.T) {
	s := NewSession(game.Empty(), normal(), Options{})
	var finishedAt time.Duration
	for i := 0; i < 100; i++ {
		if tick := s.Advance(ms(100), nil); tick.Finished {
			finishedAt = s.Elapsed()
			break
		}
	}
	if finishedAt < ms(5000) || finishedAt > ms(5200) {
		t.Log("finished at", finishedAt)
		t.Fail()
	}
	if s.Phase() != Finished {
		t.Fail()
	}
}

func TestFinishGraceAfterLastNote(t *testing.T) {
	s := NewSession(newChart(game.Note{Time: ms(1000), Lane: 0}), normal(), Options{})
	s.Advance(ms(1000), nil)
	s.AttemptHit(0, s.Elapsed())
	var finishedAt time.Duration
	for i := 0; i < 200; i++ {
		if tick := s.Advance(ms(100), nil); tick.Finished {
			finishedAt = s.Elapsed()
			break
		}
	}
	if finishedAt < ms(6100) || finishedAt > ms(6300) {
		t.Log("finished at", finishedAt)
		t.Fail()
	}
}

func TestStartedFiresOnce(t *testing.T) {
	s := NewSession(game.Empty(), normal(), Options{})
	if tick := s.Advance(ms(10), nil); !tick.Started {
		t.Fail()
	}
	if tick := s.Advance(ms(10), nil); tick.Started {
		t.Fail()
	}
}

func TestFullPlaythrough(t *testing.T) {
	chart := testdata.GetChart()
	s := NewSession(chart, normal(), Options{})
	held := []bool{true, true, true, true}
	for i := range chart.Notes {
		n := chart.Notes[i]
		if dt := n.Time - s.Elapsed(); dt > 0 {
			s.Advance(dt, held)
		}
		if !s.AttemptHit(n.Lane, s.Elapsed()) {
			t.Fatal("press at note time should land", i)
		}
	}
	if s.Hits() != len(chart.Notes) || s.Misses() != 0 || s.MaxCombo() != len(chart.Notes) {
		t.Log("hits", s.Hits(), "misses", s.Misses(), "max combo", s.MaxCombo())
		t.Fail()
	}
	finished := false
	for i := 0; i < 200; i++ {
		if tick := s.Advance(ms(100), held); tick.Finished {
			finished = true
			break
		}
	}
	if !finished || s.Health() <= 0.5 {
		t.Log("finished", finished, "health", s.Health())
		t.Fail()
	}
}
