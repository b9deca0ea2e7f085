package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory    = kingpin.Flag("mods", "Mods/content directory").Default("mods").Short('m').String()
	EditorSong   = kingpin.Flag("editor", "Launch the chart editor for a song id").String()
	Keys         = kingpin.Flag("keys", "Lane keys, one rune per lane").Default("aswd").Short('k').String()
	Volume       = kingpin.Flag("volume", "Music volume 0..1").Default("0.8").Short('v').Float64()
	FramePeriod  = kingpin.Flag("frame-period", "Simulation frame period").Default("4ms").Short('p').Duration()
	MaxTick      = kingpin.Flag("max-tick", "Clamp for a single tick after a stall").Default("100ms").Duration()
	LogFile      = kingpin.Flag("log", "Log file path").Default("eotf.log").String()
	SettingsFile = kingpin.Flag("settings", "Settings file path").Default("settings.json").String()
)

func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}

// KeyLane maps a pressed rune to its lane, or -1.
func KeyLane(r rune) int {
	for i, c := range []rune(*Keys) {
		if r == c {
			return i
		}
	}
	return -1
}
