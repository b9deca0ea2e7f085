package mode

import (
	"time"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/eotf/internal/audio"
	"git.lost.host/meutraa/eotf/internal/config"
	"git.lost.host/meutraa/eotf/internal/mods"
	"git.lost.host/meutraa/eotf/internal/parser"
	"git.lost.host/meutraa/eotf/internal/render"
	"git.lost.host/meutraa/eotf/internal/score"
	"git.lost.host/meutraa/eotf/internal/theme"
)

// Input is one discrete key event forwarded to the active mode.
type Input struct {
	Rune rune
	Key  keyboard.Key
}

// Mode is one interactive context. Only the top of the stack receives
// Advance and HandleInput; OnEnter/OnExit fire when a mode gains or
// loses the top position.
type Mode interface {
	OnEnter(ctx *Context)
	OnExit(ctx *Context)
	HandleInput(ctx *Context, in Input)
	Advance(ctx *Context, dt time.Duration)
}

// Context owns the mode stack and the collaborators modes act through.
type Context struct {
	Settings     *config.Settings
	SettingsPath string
	Library      *mods.Library
	Audio        audio.Player
	Renderer     render.Renderer
	Theme        theme.Theme
	Scores       score.Scorer
	Parser       parser.Parser

	stack []Mode
	quit  bool
}

// Push makes m the active mode. The previous top loses active status
// and receives OnExit; m receives OnEnter. Modes deeper in the stack
// are not notified.
func (c *Context) Push(m Mode) {
	if len(c.stack) > 0 {
		c.stack[len(c.stack)-1].OnExit(c)
	}
	c.stack = append(c.stack, m)
	m.OnEnter(c)
}

// Pop removes the active mode. The new top, if any, receives OnEnter
// so it can re-enable whatever it suspended when it lost the top.
// Popping the last mode leaves the stack empty, which Done reports as
// shutdown.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	top.OnExit(c)
	if len(c.stack) > 0 {
		c.stack[len(c.stack)-1].OnEnter(c)
	}
}

// Replace swaps the active mode without exposing the mode underneath.
func (c *Context) Replace(m Mode) {
	if len(c.stack) == 0 {
		c.Push(m)
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack[len(c.stack)-1] = m
	top.OnExit(c)
	m.OnEnter(c)
}

func (c *Context) Top() Mode {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *Context) Depth() int { return len(c.stack) }

// Quit requests host shutdown without unwinding the stack.
func (c *Context) Quit() { c.quit = true }

func (c *Context) Done() bool { return c.quit || len(c.stack) == 0 }

// SaveSettings persists the settings struct; failures are non-fatal.
func (c *Context) SaveSettings() {
	if c.SettingsPath == "" {
		return
	}
	_ = config.SaveSettings(c.SettingsPath, c.Settings)
}
