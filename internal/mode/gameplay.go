package mode

import (
	"errors"
	"fmt"
	"time"

	"github.com/eiannone/keyboard"
	"go.uber.org/zap"

	"git.lost.host/meutraa/eotf/internal/config"
	"git.lost.host/meutraa/eotf/internal/game"
	"git.lost.host/meutraa/eotf/internal/judge"
	"git.lost.host/meutraa/eotf/internal/logger"
	"git.lost.host/meutraa/eotf/internal/mods"
	"git.lost.host/meutraa/eotf/internal/parser"
	"git.lost.host/meutraa/eotf/internal/score"
)

type ContinuationKind int

const (
	// ReturnToCaller pops back to whoever pushed the session.
	ReturnToCaller ContinuationKind = iota
	// AdvanceToNext replaces the finished session with the next song
	// in the playlist, popping after the last one.
	AdvanceToNext
)

// Continuation describes what happens when a gameplay session reaches
// Finished. It is fixed at construction; the judgment engine itself
// never touches the mode stack.
type Continuation struct {
	Kind     ContinuationKind
	Playlist []string
	Index    int
}

// holdAssist keeps a sustain alive between terminal key-repeat events,
// since a raw terminal reports no key-up.
const holdAssist = 150 * time.Millisecond

type Gameplay struct {
	songID     string
	difficulty string
	cont       Continuation

	session *judge.Session
	meta    mods.Meta

	held      []bool
	heldUntil []time.Duration
	finished  bool
}

func NewGameplay(songID, difficulty string, cont Continuation) *Gameplay {
	return &Gameplay{songID: songID, difficulty: difficulty, cont: cont}
}

// loadChart resolves and parses the song's chart, substituting an
// empty chart for anything unresolvable so the session still starts.
func loadChart(ctx *Context, songID string) *game.Chart {
	doc, err := ctx.Library.LoadChartDoc(songID)
	if nil != err {
		if !errors.Is(err, mods.ErrNotFound) {
			logger.Warn("unable to read chart", zap.String("song", songID), zap.Error(err))
		}
		return game.Empty()
	}
	chart, err := ctx.Parser.Parse(doc)
	if nil != err {
		logger.Warn("malformed chart", zap.String("song", songID), zap.Error(err))
		return game.Empty()
	}
	return chart
}

func (g *Gameplay) OnEnter(ctx *Context) {
	if g.session != nil {
		// Regained the top after a pause.
		ctx.Audio.Unpause()
		return
	}
	chart := loadChart(ctx, g.songID)
	g.meta = ctx.Library.SongMeta(g.songID)
	parser.MergeMeta(chart, g.meta.Title, g.meta.Artist, g.meta.BPM)

	diff := game.ForDifficulty(g.difficulty, chart.BPM)
	g.session = judge.NewSession(chart, diff, judge.Options{
		HPMultiplier: ctx.Settings.HPLossMult,
		Opponent:     true,
	})
	g.held = make([]bool, chart.LaneCount)
	g.heldUntil = make([]time.Duration, chart.LaneCount)
	logger.Info("session start",
		zap.String("song", g.songID),
		zap.String("difficulty", diff.Name),
		zap.Int("notes", len(chart.Notes)),
	)
}

func (g *Gameplay) OnExit(ctx *Context) {}

func (g *Gameplay) HandleInput(ctx *Context, in Input) {
	if in.Key == keyboard.KeyEsc {
		ctx.Audio.Pause()
		ctx.Push(NewPause())
		return
	}
	lane := config.KeyLane(in.Rune)
	if lane < 0 {
		return
	}
	if lane >= g.session.Chart().LaneCount {
		// Out-of-range lanes are rejected here, at the boundary.
		return
	}
	at := g.session.Elapsed()
	g.heldUntil[lane] = at + holdAssist
	if !g.session.AttemptHit(lane, at) && !ctx.Settings.GhostTap {
		g.session.GhostTap()
	}
}

func (g *Gameplay) Advance(ctx *Context, dt time.Duration) {
	now := g.session.Elapsed()
	for lane := range g.held {
		g.held[lane] = g.heldUntil[lane] > now
	}

	tick := g.session.Advance(dt, g.held)
	if tick.Started {
		mode := ctx.Settings.AudioMode(g.songID, g.meta.AudioMode)
		if err := ctx.Audio.PlaySong(g.songID, mode); nil != err {
			logger.Warn("unable to start audio", zap.String("song", g.songID), zap.Error(err))
		}
	}
	if tick.Finished && !g.finished {
		g.finished = true
		ctx.Audio.Stop()
		ctx.Scores.Save(score.Result{
			SongID:     g.songID,
			Difficulty: g.session.Difficulty().Name,
			Hits:       g.session.Hits(),
			Misses:     g.session.Misses(),
			MaxCombo:   g.session.MaxCombo(),
			PlayedAt:   time.Now(),
		})
		logger.Info("session finished",
			zap.String("song", g.songID),
			zap.Int("hits", g.session.Hits()),
			zap.Int("misses", g.session.Misses()),
		)
		if g.cont.Kind == AdvanceToNext && g.cont.Index+1 < len(g.cont.Playlist) {
			next := Continuation{Kind: AdvanceToNext, Playlist: g.cont.Playlist, Index: g.cont.Index + 1}
			ctx.Replace(NewGameplay(next.Playlist[next.Index], g.difficulty, next))
		} else {
			ctx.Pop()
		}
		return
	}

	g.render(ctx, now)
}

// msPerRow converts time-until-hit into terminal rows at scroll 1.0.
const msPerRow = 30.0

func (g *Gameplay) render(ctx *Context, now time.Duration) {
	r := ctx.Renderer
	rows, cols := r.Size()
	r.Clear()

	chart := g.session.Chart()
	scroll := g.session.Difficulty().ScrollSpeed

	var hitRow, sign int
	switch ctx.Settings.NoteBarPos {
	case "top":
		hitRow, sign = rows/5, 1
	case "middle":
		hitRow, sign = rows/2, -1
	default:
		hitRow, sign = rows*4/5, -1
	}
	oppHitRow, oppSign := rows/5, 1
	if ctx.Settings.NoteBarPos != "bottom" {
		oppHitRow, oppSign = rows*4/5, -1
	}

	spacing := 4
	playerCol := cols/2 + 8
	oppCol := cols/2 - 8 - spacing*(chart.LaneCount-1)

	rowFor := func(base, sgn int, until time.Duration) int {
		d := int(float64(until.Milliseconds()) * scroll / msPerRow)
		return base + sgn*d
	}

	for lane := 0; lane < chart.LaneCount; lane++ {
		col := playerCol + lane*spacing
		r.Fill(hitRow, col, ctx.Theme.RenderReceptor(lane, g.held[lane]))
		r.Fill(oppHitRow, oppCol+lane*spacing, ctx.Theme.RenderReceptor(lane, false))

		if end := g.session.SustainEnd(lane); end > now {
			length := int(float64((end - now).Milliseconds()) * scroll / msPerRow)
			for i := 1; i <= length; i++ {
				row := hitRow + sign*i
				if row > 1 && row < rows {
					r.Fill(row, col, ctx.Theme.RenderSustain(lane))
				}
			}
		}
	}

	for i := range chart.Notes {
		if g.session.NoteState(i) != game.Pending {
			continue
		}
		n := &chart.Notes[i]
		row := rowFor(hitRow, sign, n.Time-now)
		if row > 1 && row < rows {
			r.Fill(row, playerCol+n.Lane*spacing, ctx.Theme.RenderNote(n.Lane, ctx.Settings.NoteSkin))
		}
		if n.Sustain > 0 {
			end := rowFor(hitRow, sign, n.End()-now)
			lo, hi := row, end
			if lo > hi {
				lo, hi = hi, lo
			}
			for sr := lo; sr <= hi; sr++ {
				if sr == row || sr <= 1 || sr >= rows {
					continue
				}
				r.Fill(sr, playerCol+n.Lane*spacing, ctx.Theme.RenderSustain(n.Lane))
			}
		}
	}

	opponent, consumed := g.session.Opponent()
	for i := range opponent {
		if consumed[i] {
			continue
		}
		n := &opponent[i]
		row := rowFor(oppHitRow, oppSign, n.Time-now)
		if row > 1 && row < rows {
			r.Fill(row, oppCol+n.Lane*spacing, ctx.Theme.RenderOpponentNote(n.Lane, ctx.Settings.NoteSkin))
		}
	}

	r.Fill(1, 2, fmt.Sprintf("%v - %v [%v]", chart.Title, chart.Artist, g.session.Difficulty().Name))
	r.Fill(2, 2, fmt.Sprintf("Hits %4v  Misses %4v  Combo %4v (max %v)",
		g.session.Hits(), g.session.Misses(), g.session.Combo(), g.session.MaxCombo()))
	r.Fill(1, cols-34, ctx.Theme.RenderHealthBar(30, g.session.Health()))
	if ctx.Settings.HPLossMult > 1 {
		r.Fill(2, cols-10, "[2x HP]")
	}
}
