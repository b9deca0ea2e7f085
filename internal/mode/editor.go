package mode

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/eiannone/keyboard"
	"go.uber.org/zap"

	"git.lost.host/meutraa/eotf/internal/game"
	"git.lost.host/meutraa/eotf/internal/logger"
)

const (
	editorScrub      = 200 * time.Millisecond
	editorSustainLen = 600 * time.Millisecond
	deleteTolerance  = 120 * time.Millisecond
)

var audioModes = []string{"auto", "song", "bg+voice"}

// Editor edits a session-independent copy of a chart and writes it
// back in the simple shape, losslessly for anything the parser emits.
type Editor struct {
	songID string

	chart     *game.Chart
	audioMode string
	cursor    time.Duration
	playing   bool
	total     time.Duration
	status    string
	loaded    bool
}

func NewEditor(songID string) *Editor {
	return &Editor{songID: songID}
}

func (e *Editor) reload(ctx *Context) {
	e.chart = loadChart(ctx, e.songID)
	meta := ctx.Library.SongMeta(e.songID)
	e.audioMode = meta.AudioMode
	e.total = e.chart.LastEnd() + 4*time.Second
	if e.total < time.Minute {
		e.total = time.Minute
	}
	if e.cursor > e.total {
		e.cursor = e.total
	}
}

func (e *Editor) OnEnter(ctx *Context) {
	if e.loaded {
		return
	}
	e.loaded = true
	e.reload(ctx)
	// Cue the audio so space starts it from a playing state.
	if err := ctx.Audio.PlaySong(e.songID, e.audioMode); nil == err {
		ctx.Audio.Pause()
	}
}

func (e *Editor) OnExit(ctx *Context) {}

func (e *Editor) addNote(lane int, sustain time.Duration) {
	e.chart.Notes = append(e.chart.Notes, game.Note{Time: e.cursor, Lane: lane, Sustain: sustain})
	sort.SliceStable(e.chart.Notes, func(i, j int) bool {
		return e.chart.Notes[i].Time < e.chart.Notes[j].Time
	})
	e.status = fmt.Sprintf("added note lane %v at %v", lane, e.cursor.Truncate(time.Millisecond))
}

func (e *Editor) deleteNearest() {
	nearest, best := -1, time.Duration(1<<62)
	for i := range e.chart.Notes {
		d := e.chart.Notes[i].Time - e.cursor
		if d < 0 {
			d = -d
		}
		if d < best {
			nearest, best = i, d
		}
	}
	if nearest < 0 || best > deleteTolerance {
		e.status = "no note near cursor"
		return
	}
	e.chart.Notes = append(e.chart.Notes[:nearest], e.chart.Notes[nearest+1:]...)
	e.status = "removed note"
}

func (e *Editor) save(ctx *Context) {
	doc, err := ctx.Parser.Serialize(e.chart, e.songID, e.audioMode)
	if nil != err {
		e.status = "serialize failed"
		return
	}
	path, err := ctx.Library.ChartWritePath(e.songID)
	if nil != err {
		e.status = "no writable path"
		return
	}
	if err := os.WriteFile(path, doc, 0644); nil != err {
		logger.Error("unable to save chart", zap.String("path", path), zap.Error(err))
		e.status = "save failed"
		return
	}
	ctx.Library.Invalidate()
	e.status = "saved " + path
}

func (e *Editor) HandleInput(ctx *Context, in Input) {
	switch {
	case in.Key == keyboard.KeyEsc:
		ctx.Audio.Stop()
		ctx.Pop()
	case in.Key == keyboard.KeySpace:
		e.playing = !e.playing
		if e.playing {
			ctx.Audio.Unpause()
		} else {
			ctx.Audio.Pause()
		}
	case in.Key == keyboard.KeyCtrlS:
		e.save(ctx)
	case in.Key == keyboard.KeyArrowLeft:
		e.cursor -= editorScrub
		if e.cursor < 0 {
			e.cursor = 0
		}
	case in.Key == keyboard.KeyArrowRight:
		e.cursor += editorScrub
		if e.cursor > e.total {
			e.cursor = e.total
		}
	case in.Rune == 'l':
		e.reload(ctx)
		e.status = "reloaded chart"
	case in.Rune == 'm':
		e.audioMode = cycle(audioModes, e.audioMode, 1)
		e.status = "audio mode: " + e.audioMode
	case in.Rune == 'x':
		e.deleteNearest()
	default:
		if i := strings.IndexRune("1234", in.Rune); i >= 0 && i < e.chart.LaneCount {
			e.addNote(i, 0)
		} else if i := strings.IndexRune("qwer", in.Rune); i >= 0 && i < e.chart.LaneCount {
			e.addNote(i, editorSustainLen)
		}
	}
}

func (e *Editor) Advance(ctx *Context, dt time.Duration) {
	if e.playing {
		e.cursor += dt
		if e.cursor >= e.total {
			e.cursor = e.total
			e.playing = false
			ctx.Audio.Pause()
		}
	}
	e.render(ctx)
}

func (e *Editor) render(ctx *Context) {
	r := ctx.Renderer
	rows, cols := r.Size()
	r.Clear()
	r.Fill(1, 2, fmt.Sprintf("Editing: %v   notes: %v   mode: %v", e.songID, len(e.chart.Notes), e.audioMode))
	r.Fill(2, 2, "Space: play  1-4: note  q-r: hold  x: del  arrows: scrub  Ctrl+S: save  l: reload  m: audio  Esc: exit")

	hitRow := rows * 4 / 5
	spacing := 4
	left := cols/2 - 2*spacing
	for lane := 0; lane < e.chart.LaneCount; lane++ {
		r.Fill(hitRow, left+lane*spacing, ctx.Theme.RenderReceptor(lane, false))
	}
	scroll := 1.0
	for i := range e.chart.Notes {
		n := &e.chart.Notes[i]
		row := hitRow - int(float64((n.Time-e.cursor).Milliseconds())*scroll/msPerRow)
		if row > 3 && row < rows-1 {
			r.Fill(row, left+n.Lane*spacing, ctx.Theme.RenderNote(n.Lane, ctx.Settings.NoteSkin))
		}
		if n.Sustain > 0 {
			end := hitRow - int(float64((n.End()-e.cursor).Milliseconds())*scroll/msPerRow)
			for sr := row - 1; sr > end && sr > 3; sr-- {
				if sr < rows-1 {
					r.Fill(sr, left+n.Lane*spacing, ctx.Theme.RenderSustain(n.Lane))
				}
			}
		}
	}

	// Timeline
	width := cols - 8
	progress := 0.0
	if e.total > 0 {
		progress = float64(e.cursor) / float64(e.total)
	}
	filled := int(float64(width) * progress)
	r.Fill(rows-1, 4, strings.Repeat("=", filled)+strings.Repeat("-", width-filled))
	if e.status != "" {
		r.Fill(rows-2, 4, e.status)
	}
}
