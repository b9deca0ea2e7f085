package judge

import (
	"time"

	"git.lost.host/meutraa/eotf/internal/game"
)

type Phase uint8

const (
	NotStarted Phase = iota
	Running
	Finished
)

// Scoring constants. These are part of the gameplay contract; the
// health rates are expressed per second of held/unheld sustain.
const (
	FinishGrace = 5 * time.Second

	startHealth        = 0.5
	hitHeal            = 0.03
	missPenalty        = 0.06
	ghostTapPenalty    = 0.05
	opponentDrain      = 0.03
	holdHealPerSecond  = 0.24
	holdDrainPerSecond = 0.6
)

type sustain struct {
	start, end time.Duration
	active     bool
}

// Tick is the observable outcome of one Advance call.
type Tick struct {
	Started      bool  // first Advance of the session; start audio now
	Missed       []int // chart note indices swept as misses this tick
	OpponentHits int
	Finished     bool
}

type Options struct {
	HPMultiplier float64 // health change scaling, 1.0 default
	Opponent     bool    // schedule mirrored opponent notes
}

// Session owns simulation time and all judgment state for one playthrough.
// The Chart itself is never mutated; note consumption lives in a parallel
// state array scoped to this session.
type Session struct {
	chart *game.Chart
	diff  game.Difficulty
	hp    float64

	phase   Phase
	elapsed time.Duration

	states    []game.NoteState
	remaining int

	opponent    []game.Note
	oppConsumed []bool

	sustains []sustain

	health   float64
	combo    int
	maxCombo int
	hits     int
	misses   int

	allConsumedAt  time.Duration
	haveConsumedAt bool
}

func NewSession(chart *game.Chart, diff game.Difficulty, opt Options) *Session {
	if opt.HPMultiplier == 0 {
		opt.HPMultiplier = 1.0
	}
	s := &Session{
		chart:     chart,
		diff:      diff,
		hp:        opt.HPMultiplier,
		states:    make([]game.NoteState, len(chart.Notes)),
		remaining: len(chart.Notes),
		sustains:  make([]sustain, chart.LaneCount),
		health:    startHealth,
	}
	if opt.Opponent {
		s.opponent = make([]game.Note, len(chart.Notes))
		s.oppConsumed = make([]bool, len(chart.Notes))
		for i, n := range chart.Notes {
			s.opponent[i] = game.Note{
				Time:    n.Time,
				Lane:    (n.Lane + 2) % chart.LaneCount,
				Sustain: n.Sustain,
			}
		}
	}
	return s
}

func (s *Session) Phase() Phase                { return s.phase }
func (s *Session) Elapsed() time.Duration      { return s.elapsed }
func (s *Session) Health() float64             { return s.health }
func (s *Session) Combo() int                  { return s.combo }
func (s *Session) MaxCombo() int               { return s.maxCombo }
func (s *Session) Hits() int                   { return s.hits }
func (s *Session) Misses() int                 { return s.misses }
func (s *Session) Chart() *game.Chart          { return s.chart }
func (s *Session) Difficulty() game.Difficulty { return s.diff }

// NoteState reports the judgment of chart note i within this session.
func (s *Session) NoteState(i int) game.NoteState { return s.states[i] }

// SustainEnd reports the end of the active sustain on lane, or 0.
func (s *Session) SustainEnd(lane int) time.Duration {
	if !s.sustains[lane].active {
		return 0
	}
	return s.sustains[lane].end
}

// Opponent exposes the mirrored opponent notes for rendering. The bool
// slice marks consumed notes and is nil when the opponent is disabled.
func (s *Session) Opponent() ([]game.Note, []bool) {
	return s.opponent, s.oppConsumed
}

func (s *Session) gainHealth(amount float64) {
	s.health += amount * s.hp
	if s.health > 1 {
		s.health = 1
	}
}

func (s *Session) loseHealth(amount float64) {
	s.health -= amount * s.hp
	if s.health < 0 {
		s.health = 0
	}
}

// Advance moves simulation time forward by dt and runs the per-tick
// sweeps. held reports, per lane, whether the input is currently down;
// it only matters while a sustain is active on that lane. The caller
// clamps pathological dt values.
func (s *Session) Advance(dt time.Duration, held []bool) Tick {
	var tick Tick
	if s.phase == Finished {
		tick.Finished = true
		return tick
	}
	if s.phase == NotStarted {
		s.phase = Running
		tick.Started = true
	}
	s.elapsed += dt

	// Miss sweep. A note can expire without any keypress, so this runs
	// every tick regardless of input.
	for i := range s.chart.Notes {
		if s.states[i] != game.Pending {
			continue
		}
		n := &s.chart.Notes[i]
		if n.Time >= s.elapsed {
			break
		}
		if n.Time < s.elapsed-s.diff.HitWindow {
			s.states[i] = game.Missed
			s.misses++
			s.combo = 0
			s.loseHealth(missPenalty)
			s.remaining--
			tick.Missed = append(tick.Missed, i)
		}
	}

	// Opponent notes drain a little health as they reach the receptor.
	for i := range s.opponent {
		if s.oppConsumed[i] {
			continue
		}
		d := s.opponent[i].Time - s.elapsed
		if d < 0 {
			d = -d
		}
		if d <= s.diff.HitWindow {
			s.oppConsumed[i] = true
			s.loseHealth(opponentDrain)
			tick.OpponentHits++
		}
	}

	// Sustain continuation: heal while held, drain while dropped.
	dtSeconds := dt.Seconds()
	for lane := range s.sustains {
		su := &s.sustains[lane]
		if !su.active {
			continue
		}
		if su.end <= s.elapsed {
			su.active = false
			continue
		}
		if len(held) > lane && held[lane] {
			s.gainHealth(holdHealPerSecond * dtSeconds)
		} else {
			s.loseHealth(holdDrainPerSecond * dtSeconds)
		}
	}

	if s.remaining == 0 && !s.haveConsumedAt {
		s.haveConsumedAt = true
		if len(s.chart.Notes) == 0 {
			s.allConsumedAt = 0
		} else {
			s.allConsumedAt = s.elapsed
		}
	}
	if s.haveConsumedAt && s.elapsed > s.allConsumedAt+FinishGrace {
		s.phase = Finished
		tick.Finished = true
	}
	return tick
}

// AttemptHit judges a discrete press on lane at the given simulation
// time. The earliest pending note inside the window is judged, never
// the nearest one; this keeps scoring deterministic when two notes in
// one lane overlap. Lane bounds are the caller's responsibility.
func (s *Session) AttemptHit(lane int, at time.Duration) bool {
	for i := range s.chart.Notes {
		n := &s.chart.Notes[i]
		if n.Time > at+s.diff.HitWindow {
			break
		}
		if s.states[i] != game.Pending || n.Lane != lane {
			continue
		}
		d := n.Time - at
		if d < 0 {
			d = -d
		}
		if d > s.diff.HitWindow {
			continue
		}
		s.states[i] = game.Hit
		s.hits++
		s.combo++
		if s.combo > s.maxCombo {
			s.maxCombo = s.combo
		}
		s.gainHealth(hitHeal)
		s.remaining--
		if n.Sustain > 0 {
			s.sustains[lane] = sustain{start: at, end: at + n.Sustain, active: true}
		}
		return true
	}
	return false
}

// GhostTap applies the unmatched-press penalty. Whether a ghost tap is
// penalized at all is the caller's policy, not this engine's.
func (s *Session) GhostTap() {
	s.misses++
	s.loseHealth(ghostTapPenalty)
}
