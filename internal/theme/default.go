package theme

import (
	"fmt"
	"image/color"
	"strings"
)

type DefaultTheme struct{}

const (
	rectSym     = "▮"
	circleSym   = "⬤"
	sustainSym  = "┃"
	receptorSym = "─"
	pressedSym  = "━"
)

// Blue=left, green=down, orange=up, pink=right.
var laneColors = [...]color.RGBA{
	{90, 160, 255, 255},
	{120, 220, 120, 255},
	{255, 170, 80, 255},
	{255, 110, 150, 255},
}

func (t *DefaultTheme) LaneColor(lane int) color.RGBA {
	return laneColors[lane%len(laneColors)]
}

func colored(c color.RGBA, sym string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, sym)
}

func skinSym(skin string) string {
	if skin == "circle" {
		return circleSym
	}
	return rectSym
}

func (t *DefaultTheme) RenderNote(lane int, skin string) string {
	return colored(t.LaneColor(lane), skinSym(skin))
}

func (t *DefaultTheme) RenderSustain(lane int) string {
	return colored(t.LaneColor(lane), sustainSym)
}

func (t *DefaultTheme) RenderReceptor(lane int, pressed bool) string {
	if pressed {
		return colored(t.LaneColor(lane), pressedSym)
	}
	return receptorSym
}

func (t *DefaultTheme) RenderOpponentNote(lane int, skin string) string {
	c := t.LaneColor(lane)
	dim := color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
	return colored(dim, skinSym(skin))
}

func (t *DefaultTheme) RenderHealthBar(width int, health float64) string {
	if width < 2 {
		width = 2
	}
	filled := int(float64(width) * health)
	if filled > width {
		filled = width
	}
	c := color.RGBA{80, 220, 120, 255}
	if health < 0.3 {
		c = color.RGBA{230, 90, 90, 255}
	}
	return colored(c, strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}
