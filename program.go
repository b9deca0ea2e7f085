package main

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"
	"go.uber.org/zap"

	"git.lost.host/meutraa/eotf/internal/audio"
	"git.lost.host/meutraa/eotf/internal/config"
	"git.lost.host/meutraa/eotf/internal/logger"
	"git.lost.host/meutraa/eotf/internal/mode"
	"git.lost.host/meutraa/eotf/internal/mods"
	"git.lost.host/meutraa/eotf/internal/parser"
	"git.lost.host/meutraa/eotf/internal/render"
	"git.lost.host/meutraa/eotf/internal/score"
	"git.lost.host/meutraa/eotf/internal/theme"
)

type Program struct {
	ctx        *mode.Context
	renderer   render.Renderer
	scorer     score.Scorer
	player     *audio.Manager
	closeWatch func() error
}

func (p *Program) Init() error {
	logger.Init(*config.LogFile)

	lib := mods.New(*config.Directory)
	if err := lib.EnsureScaffold(); nil != err {
		return fmt.Errorf("unable to prepare mods directory: %w", err)
	}
	closeWatch, err := lib.Watch()
	if nil != err {
		logger.Warn("mods watcher unavailable", zap.Error(err))
	} else {
		p.closeWatch = closeWatch
	}

	p.scorer = &score.DefaultScorer{}
	if err := p.scorer.Init(); nil != err {
		return fmt.Errorf("unable to open score database: %w", err)
	}

	p.player = audio.NewManager(lib)
	p.player.SetVolume(*config.Volume)

	p.renderer = &render.DefaultRenderer{}

	p.ctx = &mode.Context{
		Settings:     config.LoadSettings(*config.SettingsFile),
		SettingsPath: *config.SettingsFile,
		Library:      lib,
		Audio:        p.player,
		Renderer:     p.renderer,
		Theme:        &theme.DefaultTheme{},
		Scores:       p.scorer,
		Parser:       &parser.DefaultParser{},
	}

	if *config.EditorSong != "" {
		p.ctx.Push(mode.NewEditor(*config.EditorSong))
	} else {
		p.ctx.Push(mode.NewMenu())
	}
	return nil
}

func (p *Program) Deinit() {
	if p.player != nil {
		p.player.Stop()
	}
	if p.scorer != nil {
		p.scorer.Deinit()
	}
	if p.closeWatch != nil {
		_ = p.closeWatch()
	}
	logger.Sync()
}

func (p *Program) Run() error {
	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			logger.Warn("unable to close keyboard", zap.Error(err))
		}
	}()

	if err := p.renderer.Init(); nil != err {
		return fmt.Errorf("unable to init renderer: %w", err)
	}
	defer func() {
		// Restore the terminal state
		if err := p.renderer.Deinit(); nil != err {
			logger.Warn("unable to restore terminal", zap.Error(err))
		}
	}()

	p.renderer.RenderLoop(*config.FramePeriod, func(now time.Time, dt time.Duration) bool {
		// Clamp a pathological tick after a stall so the miss sweep
		// does not consume half the chart at once.
		if dt > *config.MaxTick {
			dt = *config.MaxTick
		}

		// Drain the key events that occurred so far; the top of the
		// stack may change as a result, so re-resolve it each event.
		for i := len(keyChannel); i > 0; i-- {
			key := <-keyChannel
			if key.Err != nil {
				logger.Warn("keyboard read", zap.Error(key.Err))
				continue
			}
			if key.Key == keyboard.KeyCtrlC {
				return false
			}
			top := p.ctx.Top()
			if top == nil {
				return false
			}
			top.HandleInput(p.ctx, mode.Input{Rune: key.Rune, Key: key.Key})
			if p.ctx.Done() {
				return false
			}
		}

		top := p.ctx.Top()
		if top == nil {
			return false
		}
		top.Advance(p.ctx, dt)
		return !p.ctx.Done()
	})
	return nil
}
