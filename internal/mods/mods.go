package mods

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"git.lost.host/meutraa/eotf/internal/logger"
)

// ErrNotFound marks a song with no resolvable chart document. Callers
// treat it identically to an empty chart.
var ErrNotFound = errors.New("chart not found")

const enabledFile = "mods_enabled.json"

// Meta is the song metadata record used for merge fallback and for
// selecting an audio mode.
type Meta struct {
	ID        string
	Title     string
	Artist    string
	BPM       float64
	AudioMode string
}

// Library resolves content across layered mod directories. On a path
// conflict the later mod (sorted order) wins.
type Library struct {
	root string

	mu    sync.Mutex
	songs []string
	dirty bool
}

func New(root string) *Library {
	return &Library{root: root, dirty: true}
}

func (l *Library) Root() string { return l.root }

// Mods lists mod directories, filtered to the enabled set when an
// enabled file exists.
func (l *Library) Mods() []string {
	entries, err := os.ReadDir(l.root)
	if nil != err {
		return nil
	}
	all := []string{}
	for _, e := range entries {
		if e.IsDir() {
			all = append(all, e.Name())
		}
	}
	sort.Strings(all)
	enabled, ok := l.EnabledMods()
	if !ok {
		return all
	}
	set := map[string]bool{}
	for _, m := range enabled {
		set[m] = true
	}
	kept := []string{}
	for _, m := range all {
		if set[m] {
			kept = append(kept, m)
		}
	}
	return kept
}

// AllMods lists every mod directory regardless of the enabled set.
func (l *Library) AllMods() []string {
	entries, err := os.ReadDir(l.root)
	if nil != err {
		return nil
	}
	all := []string{}
	for _, e := range entries {
		if e.IsDir() {
			all = append(all, e.Name())
		}
	}
	sort.Strings(all)
	return all
}

func (l *Library) EnabledMods() ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(l.root, enabledFile))
	if nil != err {
		return nil, false
	}
	var mods []string
	if err := json.Unmarshal(data, &mods); nil != err {
		return nil, false
	}
	return mods, true
}

func (l *Library) SaveEnabledMods(mods []string) error {
	data, err := json.MarshalIndent(mods, "", "  ")
	if nil != err {
		return err
	}
	l.Invalidate()
	return os.WriteFile(filepath.Join(l.root, enabledFile), data, 0644)
}

// Find resolves a relative path across mods, last mod wins.
func (l *Library) Find(rel string) (string, bool) {
	mods := l.Mods()
	for i := len(mods) - 1; i >= 0; i-- {
		candidate := filepath.Join(l.root, mods[i], rel)
		if _, err := os.Stat(candidate); nil == err {
			return candidate, true
		}
	}
	return "", false
}

// Songs lists song ids across every enabled mod's data directory.
// Three chart styles are recognized: data/<id>/chart.json,
// data/chart-<id>.json and legacy data/<id>.json.
func (l *Library) Songs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.dirty {
		return l.songs
	}

	songs := []string{}
	seen := map[string]bool{}
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			songs = append(songs, id)
		}
	}
	for _, mod := range l.Mods() {
		dataDir := filepath.Join(l.root, mod, "data")
		entries, err := os.ReadDir(dataDir)
		if nil != err {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			lower := strings.ToLower(name)
			if e.IsDir() {
				if _, err := os.Stat(filepath.Join(dataDir, name, "chart.json")); nil == err {
					add(name)
				}
				continue
			}
			if !strings.HasSuffix(lower, ".json") {
				continue
			}
			if strings.HasPrefix(lower, "chart-") {
				add(name[6 : len(name)-5])
			} else {
				add(name[:len(name)-5])
			}
		}
	}
	sort.Strings(songs)
	l.songs = songs
	l.dirty = false
	return songs
}

// Invalidate drops the cached song list. Called by the watcher and
// after editor write-back.
func (l *Library) Invalidate() {
	l.mu.Lock()
	l.dirty = true
	l.mu.Unlock()
}

func (l *Library) chartPath(songID string) (string, bool) {
	if p, ok := l.Find(filepath.Join("data", songID, "chart.json")); ok {
		return p, true
	}
	if p, ok := l.Find(filepath.Join("data", "chart-"+songID+".json")); ok {
		return p, true
	}
	return l.Find(filepath.Join("data", songID+".json"))
}

// LoadChartDoc resolves the raw chart document for a song.
func (l *Library) LoadChartDoc(songID string) ([]byte, error) {
	p, ok := l.chartPath(songID)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, songID)
	}
	return os.ReadFile(p)
}

// SongMeta loads the metadata record for a song with defaults for
// every absent field.
func (l *Library) SongMeta(songID string) Meta {
	meta := Meta{
		ID:        songID,
		Title:     songID,
		Artist:    "Unknown",
		BPM:       120,
		AudioMode: "auto",
	}
	doc, err := l.LoadChartDoc(songID)
	if nil != err {
		return meta
	}
	root := gjson.ParseBytes(doc)
	if t := root.Get("title"); t.Type == gjson.String && t.String() != "" {
		meta.Title = t.String()
	}
	if a := root.Get("artist"); a.Type == gjson.String && a.String() != "" {
		meta.Artist = a.String()
	}
	if b := root.Get("bpm"); b.Type == gjson.Number && b.Float() > 0 {
		meta.BPM = b.Float()
	}
	if m := root.Get("audioMode"); m.Type == gjson.String && m.String() != "" {
		meta.AudioMode = m.String()
	}
	return meta
}

// FindMusic resolves the instrumental and voices tracks for a song.
// mode is auto, song or bg+voice.
func (l *Library) FindMusic(songID, mode string) (inst, voices string) {
	first := func(rels ...string) string {
		for _, rel := range rels {
			if p, ok := l.Find(rel); ok {
				return p
			}
		}
		return ""
	}
	songSingle := first(
		filepath.Join("data", songID, "song.ogg"),
		filepath.Join("music", songID, "song.ogg"),
		filepath.Join("music", songID, "song.mp3"),
	)
	background := first(
		filepath.Join("music", songID, "inst.ogg"),
		filepath.Join("music", songID, "background.ogg"),
		filepath.Join("data", songID, "inst.ogg"),
		filepath.Join("data", songID, "background.ogg"),
	)
	voice := first(
		filepath.Join("music", songID, "voices.ogg"),
		filepath.Join("music", songID, "voice.ogg"),
		filepath.Join("data", songID, "voices.ogg"),
		filepath.Join("data", songID, "voice.ogg"),
	)

	switch mode {
	case "song":
		if songSingle != "" {
			return songSingle, ""
		}
	case "bg+voice":
		if (background != "" || songSingle != "") && voice != "" {
			if background != "" {
				return background, voice
			}
			return songSingle, voice
		}
	}
	if songSingle != "" && voice == "" {
		return songSingle, ""
	}
	if background != "" {
		return background, voice
	}
	return songSingle, voice
}

// ChartWritePath resolves where the editor saves a chart: the existing
// chart file when there is one, else data/<id>/chart.json inside the
// first enabled mod.
func (l *Library) ChartWritePath(songID string) (string, error) {
	if p, ok := l.chartPath(songID); ok {
		return p, nil
	}
	mods := l.Mods()
	target := "example_mod"
	if len(mods) > 0 {
		target = mods[0]
	}
	dir := filepath.Join(l.root, target, "data", songID)
	if err := os.MkdirAll(dir, 0755); nil != err {
		return "", err
	}
	return filepath.Join(dir, "chart.json"), nil
}

var scaffoldDirs = []string{"data", "music", "scripts", "characters", "event", "note", "plugins"}

// EnsureScaffold seeds the mods directory with an example mod holding
// the tutorial chart, and an empty template mod.
func (l *Library) EnsureScaffold() error {
	for _, mod := range []string{"example_mod", "mod_template"} {
		for _, sub := range scaffoldDirs {
			if err := os.MkdirAll(filepath.Join(l.root, mod, sub), 0755); nil != err {
				return err
			}
		}
	}
	demo := filepath.Join(l.root, "example_mod", "data", "tutorial.json")
	if _, err := os.Stat(demo); nil != err {
		if err := os.WriteFile(demo, []byte(TutorialChart), 0644); nil != err {
			return err
		}
		logger.Info("seeded tutorial chart", zap.String("path", demo))
	}
	readme := filepath.Join(l.root, "mod_template", "README.txt")
	if _, err := os.Stat(readme); nil != err {
		content := "Place your charts in data/*.json and audio in music/<songId>/.\n"
		if err := os.WriteFile(readme, []byte(content), 0644); nil != err {
			return err
		}
	}
	l.Invalidate()
	return nil
}

// TutorialChart is the simple-shape chart seeded on first run.
const TutorialChart = `{
  "id": "tutorial",
  "title": "Tutorial",
  "artist": "Unknown",
  "bpm": 120,
  "lanes": 4,
  "notes": [
    {"time": 1000, "lane": 0},
    {"time": 1250, "lane": 1},
    {"time": 1500, "lane": 2},
    {"time": 1750, "lane": 3},
    {"time": 2200, "lane": 0, "sustain": 400},
    {"time": 3000, "lane": 1},
    {"time": 3250, "lane": 2},
    {"time": 3500, "lane": 3}
  ]
}
`
