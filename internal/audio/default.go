package audio

import (
	"math"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"go.uber.org/zap"

	"git.lost.host/meutraa/eotf/internal/logger"
	"git.lost.host/meutraa/eotf/internal/mods"
)

// Manager plays resolved song audio through the speaker. A song is an
// instrumental stream plus an optional voices stream mixed on top.
type Manager struct {
	lib *mods.Library

	sampleRate beep.SampleRate
	inited     bool

	ctrl    *effects.Volume
	pause   *beep.Ctrl
	streams []beep.StreamSeekCloser

	vol float64
}

func NewManager(lib *mods.Library) *Manager {
	return &Manager{lib: lib, vol: 0.8}
}

func decode(p string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(p)
	if nil != err {
		return nil, beep.Format{}, err
	}
	if path.Ext(p) == ".mp3" {
		return mp3.Decode(f)
	}
	return vorbis.Decode(f)
}

func (m *Manager) resampled(s beep.StreamSeekCloser, format beep.Format) beep.Streamer {
	if format.SampleRate == m.sampleRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, m.sampleRate, s)
}

func (m *Manager) PlaySong(songID, mode string) error {
	m.Stop()

	instPath, voicesPath := m.lib.FindMusic(songID, mode)
	if instPath == "" {
		// A song without audio is still playable; judgment does not
		// depend on playback.
		logger.Warn("no audio found", zap.String("song", songID), zap.String("mode", mode))
		return nil
	}

	inst, format, err := decode(instPath)
	if nil != err {
		return err
	}
	if !m.inited {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); nil != err {
			inst.Close()
			return err
		}
		m.sampleRate = format.SampleRate
		m.inited = true
	}
	m.streams = append(m.streams, inst)
	streamer := m.resampled(inst, format)

	if voicesPath != "" {
		voices, vformat, err := decode(voicesPath)
		if nil != err {
			logger.Warn("unable to decode voices", zap.String("path", voicesPath), zap.Error(err))
		} else {
			m.streams = append(m.streams, voices)
			streamer = beep.Mix(streamer, m.resampled(voices, vformat))
		}
	}

	m.pause = &beep.Ctrl{Streamer: streamer}
	m.ctrl = &effects.Volume{Streamer: m.pause, Base: 2}
	m.applyVolume()
	speaker.Play(m.ctrl)
	logger.Info("playing song",
		zap.String("song", songID),
		zap.String("mode", mode),
		zap.String("inst", instPath),
		zap.Bool("voices", voicesPath != ""),
	)
	return nil
}

func (m *Manager) Pause() {
	if nil == m.pause {
		return
	}
	speaker.Lock()
	m.pause.Paused = true
	speaker.Unlock()
}

func (m *Manager) Unpause() {
	if nil == m.pause {
		return
	}
	speaker.Lock()
	m.pause.Paused = false
	speaker.Unlock()
}

func (m *Manager) Stop() {
	if m.inited {
		speaker.Clear()
	}
	for _, s := range m.streams {
		_ = s.Close()
	}
	m.streams = nil
	m.pause = nil
	m.ctrl = nil
}

func (m *Manager) applyVolume() {
	if nil == m.ctrl {
		return
	}
	if m.vol <= 0 {
		m.ctrl.Silent = true
		return
	}
	m.ctrl.Silent = false
	m.ctrl.Volume = math.Log2(m.vol)
}

func (m *Manager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	m.vol = v
	if m.inited {
		speaker.Lock()
		m.applyVolume()
		speaker.Unlock()
	} else {
		m.applyVolume()
	}
}

func (m *Manager) Volume() float64 { return m.vol }
