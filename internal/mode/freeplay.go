package mode

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/eotf/internal/game"
)

type Freeplay struct {
	songs     []string
	selected  int
	diffIndex int
}

func NewFreeplay() *Freeplay {
	return &Freeplay{diffIndex: 1} // normal
}

func (f *Freeplay) OnEnter(ctx *Context) {
	f.songs = ctx.Library.Songs()
	if f.selected >= len(f.songs) {
		f.selected = 0
	}
}

func (f *Freeplay) OnExit(ctx *Context) {}

func (f *Freeplay) HandleInput(ctx *Context, in Input) {
	n := len(f.songs)
	switch {
	case in.Key == keyboard.KeyEsc:
		ctx.Pop()
	case in.Key == keyboard.KeyArrowUp:
		if n > 0 {
			f.selected = (f.selected - 1 + n) % n
		}
	case in.Key == keyboard.KeyArrowDown:
		if n > 0 {
			f.selected = (f.selected + 1) % n
		}
	case in.Key == keyboard.KeyArrowLeft:
		f.diffIndex = (f.diffIndex - 1 + len(game.DifficultyNames)) % len(game.DifficultyNames)
	case in.Key == keyboard.KeyArrowRight:
		f.diffIndex = (f.diffIndex + 1) % len(game.DifficultyNames)
	case in.Rune == 'e':
		if n > 0 {
			ctx.Push(NewEditor(f.songs[f.selected]))
		}
	case in.Key == keyboard.KeyEnter || in.Key == keyboard.KeySpace:
		if n > 0 {
			diff := game.DifficultyNames[f.diffIndex]
			ctx.Push(NewGameplay(f.songs[f.selected], diff, Continuation{Kind: ReturnToCaller}))
		}
	}
}

func (f *Freeplay) Advance(ctx *Context, dt time.Duration) {
	r := ctx.Renderer
	rows, cols := r.Size()
	r.Clear()
	r.Fill(2, cols/2-4, "Freeplay")
	if len(f.songs) == 0 {
		r.Fill(4, 4, "No charts found in mods/*/data.")
		return
	}
	y := 4
	for i, id := range f.songs {
		if y >= rows-3 {
			break
		}
		meta := ctx.Library.SongMeta(id)
		cursor := "  "
		if i == f.selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%v%v - %v", cursor, meta.Title, meta.Artist)
		if best, ok := ctx.Scores.Best(id); ok {
			line += fmt.Sprintf("   (best %.0f%%)", best.Accuracy()*100)
		}
		r.Fill(y, 4, line)
		y++
	}
	r.Fill(rows-2, 4, fmt.Sprintf("Difficulty: %v  (Left/Right)", game.DifficultyNames[f.diffIndex]))
	r.Fill(rows-1, 4, "Enter: play  e: editor  Esc: back")
}
