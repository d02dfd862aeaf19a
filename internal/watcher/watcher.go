package watcher

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher signals on Changes once the local JSON directory has been quiet
// for the debounce period after a definition file was written, created,
// removed or renamed. Bursts of edits collapse into one signal.
type Watcher struct {
	Dir     string
	Changes <-chan struct{}

	changes  chan struct{}
	done     chan struct{}
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	ch := make(chan struct{}, 1)
	return &Watcher{
		Dir:      dir,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		debounce: debounce,
		watcher:  fw,
	}, nil
}

func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !isDefinitionFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				log.Debugf("Definition file changed: %s", event.Name)
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.emit()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("⚠️ Watch error on %s: %v", w.Dir, err)
		}
	}
}

// emit never blocks; a signal already waiting covers this change too.
func (w *Watcher) emit() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func isDefinitionFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".json") && !strings.HasPrefix(base, ".")
}
