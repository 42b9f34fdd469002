package configwatcher

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch 监听配置文件变更，去抖后触发回调
func Watch(configPath string, onChange func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(configPath) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				// 编辑器可能连续触发多次事件，500ms 去抖
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(500*time.Millisecond, func() {
					zap.L().Info("config file changed, reloading", zap.String("file", event.Name))
					onChange()
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				zap.L().Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	return watcher, nil
}
