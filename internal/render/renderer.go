package render

import (
	"image/color"
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (rows, cols int)
	Clear()
	Fill(row, col int, message string)
	FillColor(row, col int, c color.RGBA, message string)

	// RenderLoop drives one frame per period until render returns false.
	// dt is the wall-clock time since the previous frame.
	RenderLoop(period time.Duration, render func(now time.Time, dt time.Duration) bool)
}
