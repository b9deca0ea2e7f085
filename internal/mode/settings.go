package mode

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"
)

var (
	barPositions = []string{"bottom", "middle", "top"}
	noteSkins    = []string{"rect", "circle"}
)

type SettingsMode struct {
	options  []string
	selected int
}

func NewSettingsMode() *SettingsMode {
	return &SettingsMode{options: []string{"Volume", "Note Bar Position", "Note Skin", "Ghost Tapping"}}
}

func (s *SettingsMode) OnEnter(ctx *Context) {}
func (s *SettingsMode) OnExit(ctx *Context)  {}

func cycle(values []string, current string, dir int) string {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	return values[(idx+dir+len(values))%len(values)]
}

func (s *SettingsMode) change(ctx *Context, dir int) {
	switch s.options[s.selected] {
	case "Volume":
		ctx.Audio.SetVolume(ctx.Audio.Volume() + 0.05*float64(dir))
		return // volume is not persisted in the settings file
	case "Note Bar Position":
		ctx.Settings.NoteBarPos = cycle(barPositions, ctx.Settings.NoteBarPos, dir)
	case "Note Skin":
		ctx.Settings.NoteSkin = cycle(noteSkins, ctx.Settings.NoteSkin, dir)
	case "Ghost Tapping":
		ctx.Settings.GhostTap = !ctx.Settings.GhostTap
	}
	ctx.SaveSettings()
}

func (s *SettingsMode) HandleInput(ctx *Context, in Input) {
	switch {
	case in.Key == keyboard.KeyEsc:
		ctx.Pop()
	case in.Key == keyboard.KeyArrowUp:
		s.selected = (s.selected - 1 + len(s.options)) % len(s.options)
	case in.Key == keyboard.KeyArrowDown:
		s.selected = (s.selected + 1) % len(s.options)
	case in.Key == keyboard.KeyArrowLeft:
		s.change(ctx, -1)
	case in.Key == keyboard.KeyArrowRight:
		s.change(ctx, 1)
	}
}

func (s *SettingsMode) value(ctx *Context, name string) string {
	switch name {
	case "Volume":
		return fmt.Sprintf("%v%%", int(ctx.Audio.Volume()*100))
	case "Note Bar Position":
		return ctx.Settings.NoteBarPos
	case "Note Skin":
		return ctx.Settings.NoteSkin
	case "Ghost Tapping":
		if ctx.Settings.GhostTap {
			return "On"
		}
		return "Off"
	}
	return ""
}

func (s *SettingsMode) Advance(ctx *Context, dt time.Duration) {
	r := ctx.Renderer
	rows, cols := r.Size()
	r.Clear()
	r.Fill(2, cols/2-4, "Settings")
	y := 4
	for i, name := range s.options {
		cursor := "  "
		if i == s.selected {
			cursor = "> "
		}
		r.Fill(y, 4, fmt.Sprintf("%v%v: %v", cursor, name, s.value(ctx, name)))
		y++
	}
	r.Fill(rows-1, 4, "Up/Down: select  Left/Right: change  Esc: back")
}
