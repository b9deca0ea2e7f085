package mode

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"
)

type Menu struct {
	items    []string
	selected int
	toast    string
	toastFor time.Duration
}

func NewMenu() *Menu {
	return &Menu{items: []string{"Freeplay", "Story Mode", "Settings", "Mods", "Credits", "Quit"}}
}

func (m *Menu) OnEnter(ctx *Context) {}
func (m *Menu) OnExit(ctx *Context)  {}

func (m *Menu) activate(ctx *Context) {
	switch m.items[m.selected] {
	case "Freeplay":
		ctx.Push(NewFreeplay())
	case "Story Mode":
		ctx.Push(NewStory())
	case "Settings":
		ctx.Push(NewSettingsMode())
	case "Mods":
		ctx.Push(NewModsManager())
	case "Credits":
		ctx.Push(NewCredits())
	default:
		ctx.Quit()
	}
}

func (m *Menu) HandleInput(ctx *Context, in Input) {
	switch {
	case in.Key == keyboard.KeyArrowUp || in.Rune == 'k':
		m.selected = (m.selected - 1 + len(m.items)) % len(m.items)
	case in.Key == keyboard.KeyArrowDown || in.Rune == 'j':
		m.selected = (m.selected + 1) % len(m.items)
	case in.Key == keyboard.KeyEnter || in.Key == keyboard.KeySpace:
		m.activate(ctx)
	case in.Rune == 'h':
		// Toggle the health-loss scaling between 1x and 2x.
		if ctx.Settings.HPLossMult < 2 {
			ctx.Settings.HPLossMult = 2
		} else {
			ctx.Settings.HPLossMult = 1
		}
		ctx.SaveSettings()
		m.toast = fmt.Sprintf("HP Loss Mult: %vx", int(ctx.Settings.HPLossMult))
		m.toastFor = time.Second
	case in.Key == keyboard.KeyEsc:
		ctx.Quit()
	}
}

func (m *Menu) Advance(ctx *Context, dt time.Duration) {
	if m.toastFor > 0 {
		m.toastFor -= dt
	}
	r := ctx.Renderer
	rows, cols := r.Size()
	r.Clear()
	r.Fill(rows/4, cols/2-8, "end of the funk")
	y := rows/4 + 2
	for i, item := range m.items {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		r.Fill(y, cols/2-8, cursor+item)
		y++
	}
	r.Fill(rows-1, 2, fmt.Sprintf("h: toggle HP loss (current %vx)", int(ctx.Settings.HPLossMult)))
	if m.toastFor > 0 {
		r.Fill(rows-2, 2, m.toast)
	}
}
