package mode

import (
	"time"

	"github.com/eiannone/keyboard"
)

type Credits struct{}

func NewCredits() *Credits { return &Credits{} }

func (c *Credits) OnEnter(ctx *Context) {}
func (c *Credits) OnExit(ctx *Context)  {}

func (c *Credits) HandleInput(ctx *Context, in Input) {
	if in.Key == keyboard.KeyEsc {
		ctx.Pop()
	}
}

func (c *Credits) Advance(ctx *Context, dt time.Duration) {
	r := ctx.Renderer
	rows, _ := r.Size()
	r.Clear()
	r.Fill(2, 4, "Credits")
	lines := []string{
		"end of the funk",
		"A terminal rhythm game",
		"Drop mods into mods/<mod>/*",
	}
	y := 4
	for _, line := range lines {
		r.Fill(y, 4, line)
		y++
	}
	r.Fill(rows-1, 4, "Esc: back")
}
