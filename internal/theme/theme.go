package theme

import "image/color"

type Theme interface {
	LaneColor(lane int) color.RGBA
	RenderNote(lane int, skin string) string
	RenderSustain(lane int) string
	RenderReceptor(lane int, pressed bool) string
	RenderOpponentNote(lane int, skin string) string
	RenderHealthBar(width int, health float64) string
}
