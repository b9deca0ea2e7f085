package mods

import (
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"git.lost.host/meutraa/eotf/internal/logger"
)

// Watch invalidates the song cache whenever mod content changes on
// disk, so charts dropped in while the game runs show up in freeplay.
func (l *Library) Watch() (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	if err := watcher.Add(l.root); nil != err {
		watcher.Close()
		return nil, err
	}
	for _, mod := range l.AllMods() {
		// Best effort; a mod without a data dir is still a valid mod.
		_ = watcher.Add(l.root + "/" + mod + "/data")
	}
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				l.Invalidate()
				if ev.Op.Has(fsnotify.Create) {
					_ = watcher.Add(ev.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("mods watcher", zap.Error(err))
			}
		}
	}()
	return watcher.Close, nil
}
