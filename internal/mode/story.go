package mode

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"
)

// Story plays every known song in sequence; the gameplay sessions are
// chained through an AdvanceToNext continuation.
type Story struct {
	week []string
}

func NewStory() *Story { return &Story{} }

func (s *Story) OnEnter(ctx *Context) {
	s.week = ctx.Library.Songs()
}

func (s *Story) OnExit(ctx *Context) {}

func (s *Story) HandleInput(ctx *Context, in Input) {
	switch {
	case in.Key == keyboard.KeyEsc:
		ctx.Pop()
	case in.Key == keyboard.KeyEnter || in.Key == keyboard.KeySpace:
		if len(s.week) > 0 {
			cont := Continuation{Kind: AdvanceToNext, Playlist: s.week, Index: 0}
			ctx.Push(NewGameplay(s.week[0], "normal", cont))
		}
	}
}

func (s *Story) Advance(ctx *Context, dt time.Duration) {
	r := ctx.Renderer
	_, cols := r.Size()
	r.Clear()
	r.Fill(2, cols/2-5, "Story Mode")
	r.Fill(4, 4, fmt.Sprintf("%v songs in the week.", len(s.week)))
	r.Fill(5, 4, "Enter: start week  Esc: back")
}
