package configwatcher

import (
	"eklavya_backend/internal/config"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchConfig reloads the config file on change and hands the parsed result
// to reload. Editors often emit several write events per save, so reloads are
// debounced. Runs until the watcher dies; call it in a goroutine.
func WatchConfig(configPath string, reload func(*config.Config)) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		zap.L().Error("config watcher init failed, hot reload disabled", zap.Error(err))
		return
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		zap.L().Error("config watcher: bad path, hot reload disabled",
			zap.String("path", configPath), zap.Error(err))
		return
	}
	if err := watcher.Add(absPath); err != nil {
		zap.L().Error("config watcher: cannot watch file, hot reload disabled",
			zap.String("path", absPath), zap.Error(err))
		return
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(time.Second)
			}
		case <-debounce.C:
			cfg, err := config.LoadConfig(filepath.Dir(configPath))
			if err != nil {
				zap.L().Error("config reload failed, keeping previous config", zap.Error(err))
				continue
			}
			reload(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			zap.L().Error("config watcher error", zap.Error(err))
		}
	}
}
