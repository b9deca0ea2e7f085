package mode

import (
	"time"

	"github.com/eiannone/keyboard"
)

// ModsManager toggles which mod directories contribute content; the
// enabled set persists on exit.
type ModsManager struct {
	all      []string
	enabled  map[string]bool
	selected int
}

func NewModsManager() *ModsManager { return &ModsManager{} }

func (m *ModsManager) OnEnter(ctx *Context) {
	m.all = ctx.Library.AllMods()
	m.enabled = map[string]bool{}
	if cur, ok := ctx.Library.EnabledMods(); ok {
		for _, mod := range cur {
			m.enabled[mod] = true
		}
	} else {
		for _, mod := range m.all {
			m.enabled[mod] = true
		}
	}
}

func (m *ModsManager) save(ctx *Context) {
	kept := []string{}
	for _, mod := range m.all {
		if m.enabled[mod] {
			kept = append(kept, mod)
		}
	}
	_ = ctx.Library.SaveEnabledMods(kept)
}

func (m *ModsManager) OnExit(ctx *Context) {}

func (m *ModsManager) HandleInput(ctx *Context, in Input) {
	n := len(m.all)
	switch {
	case in.Key == keyboard.KeyEsc:
		m.save(ctx)
		ctx.Pop()
	case in.Key == keyboard.KeyArrowUp:
		if n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
	case in.Key == keyboard.KeyArrowDown:
		if n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case in.Key == keyboard.KeyEnter || in.Key == keyboard.KeySpace:
		if n > 0 {
			mod := m.all[m.selected]
			m.enabled[mod] = !m.enabled[mod]
		}
	}
}

func (m *ModsManager) Advance(ctx *Context, dt time.Duration) {
	r := ctx.Renderer
	rows, cols := r.Size()
	r.Clear()
	r.Fill(2, cols/2-6, "Mods Manager")
	y := 4
	for i, mod := range m.all {
		if y >= rows-2 {
			break
		}
		marker := "[ ]"
		if m.enabled[mod] {
			marker = "[x]"
		}
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		r.Fill(y, 4, cursor+marker+" "+mod)
		y++
	}
	r.Fill(rows-1, 4, "Enter: toggle  Esc: save and back")
}
