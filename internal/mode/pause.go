package mode

import (
	"time"

	"github.com/eiannone/keyboard"
)

type Pause struct {
	items    []string
	selected int
}

func NewPause() *Pause {
	return &Pause{items: []string{"Resume", "Settings", "Exit to Menu"}}
}

func (p *Pause) OnEnter(ctx *Context) {}
func (p *Pause) OnExit(ctx *Context)  {}

func (p *Pause) resume(ctx *Context) {
	// Popping re-enters gameplay, which unpauses playback.
	ctx.Pop()
}

func (p *Pause) HandleInput(ctx *Context, in Input) {
	switch {
	case in.Key == keyboard.KeyEsc:
		p.resume(ctx)
	case in.Key == keyboard.KeyArrowUp:
		p.selected = (p.selected - 1 + len(p.items)) % len(p.items)
	case in.Key == keyboard.KeyArrowDown:
		p.selected = (p.selected + 1) % len(p.items)
	case in.Key == keyboard.KeyEnter || in.Key == keyboard.KeySpace:
		switch p.items[p.selected] {
		case "Resume":
			p.resume(ctx)
		case "Settings":
			ctx.Push(NewSettingsMode())
		default:
			ctx.Audio.Stop()
			ctx.Pop() // close pause; gameplay briefly resumes
			ctx.Pop() // close gameplay
		}
	}
}

func (p *Pause) Advance(ctx *Context, dt time.Duration) {
	r := ctx.Renderer
	rows, cols := r.Size()
	r.Clear()
	r.Fill(rows/3, cols/2-3, "Paused")
	y := rows/3 + 2
	for i, item := range p.items {
		cursor := "  "
		if i == p.selected {
			cursor = "> "
		}
		r.Fill(y, cols/2-8, cursor+item)
		y++
	}
}
