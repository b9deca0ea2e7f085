package config

import (
	"encoding/json"
	"os"
)

// Settings enumerates every recognized user option. Unknown values are
// replaced by defaults at load time instead of being read ad hoc later.
type Settings struct {
	NoteBarPos     string            `json:"note_bar_pos"` // top, middle, bottom
	NoteSkin       string            `json:"note_skin"`    // rect, circle
	GhostTap       bool              `json:"ghost_tap"`
	HPLossMult     float64           `json:"hp_loss_mult"`
	AudioOverrides map[string]string `json:"audio_overrides"` // songId -> auto|song|bg+voice
}

func DefaultSettings() *Settings {
	return &Settings{
		NoteBarPos:     "bottom",
		NoteSkin:       "rect",
		GhostTap:       true,
		HPLossMult:     1.0,
		AudioOverrides: map[string]string{},
	}
}

func validBarPos(p string) bool {
	return p == "top" || p == "middle" || p == "bottom"
}

func validSkin(s string) bool {
	return s == "rect" || s == "circle"
}

func validAudioMode(m string) bool {
	return m == "auto" || m == "song" || m == "bg+voice"
}

// LoadSettings reads the settings file, falling back to defaults for
// the whole file or for any individual out-of-range value.
func LoadSettings(path string) *Settings {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if nil != err {
		return s
	}
	if err := json.Unmarshal(data, s); nil != err {
		return DefaultSettings()
	}
	if !validBarPos(s.NoteBarPos) {
		s.NoteBarPos = "bottom"
	}
	if !validSkin(s.NoteSkin) {
		s.NoteSkin = "rect"
	}
	if s.HPLossMult <= 0 {
		s.HPLossMult = 1.0
	}
	if s.AudioOverrides == nil {
		s.AudioOverrides = map[string]string{}
	}
	for id, mode := range s.AudioOverrides {
		if !validAudioMode(mode) {
			delete(s.AudioOverrides, id)
		}
	}
	return s
}

func SaveSettings(path string, s *Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if nil != err {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AudioMode resolves the audio mode for a song, preferring a per-song
// override, then the chart metadata value, then auto.
func (s *Settings) AudioMode(songID, metaMode string) string {
	if mode, ok := s.AudioOverrides[songID]; ok {
		return mode
	}
	if validAudioMode(metaMode) {
		return metaMode
	}
	return "auto"
}
