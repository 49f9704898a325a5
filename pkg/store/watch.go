package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// EventType describes the nature of a store change notification.
type EventType int

const (
	// EventKeyChanged indicates the value stored at Key was written or erased.
	EventKeyChanged EventType = iota

	// EventInvalidated signals a change that could not be tied to a key (for
	// example a Clear, or a watcher error). Callers should reload everything.
	EventInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventKeyChanged:
		return "changed"
	case EventInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel. The channel is closed once ctx is done or the watcher hits
// an unrecoverable error.
func (p *Diskv) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, errors.Wrap(err, "store: ensure base path")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "store: create watcher")
	}
	log := p.logger()
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Warn("store: watcher close", "error", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, errors.Wrap(err, "store: enumerate directories")
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, errors.Wrapf(err, "store: watch %s", dir)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; it reloads on the next event anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("store: watcher error", "error", err)
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						// New shard directory: watch it so the write that
						// created it is followed by file events.
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								log.Warn("store: watch directory", "dir", absDir, "error", err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						if key := p.keyInDir(absDir); key != "" {
							throttle.Enqueue(Event{Type: EventKeyChanged, Key: key}, send)
						}
						continue
					}
				}

				key := p.keyForPath(evt.Name)
				if key == "" {
					throttle.Enqueue(Event{Type: EventInvalidated}, send)
					continue
				}
				throttle.Enqueue(Event{Type: EventKeyChanged, Key: key}, send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// keyForPath derives the store key from a diskv file path.
func (p *Diskv) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	dir, file := filepath.Split(rel)
	if dir == "" || file == "" {
		return ""
	}
	key, err := decodeKey(file)
	if err != nil || shardFor(key) != filepath.Clean(dir) {
		return ""
	}
	return key
}

// keyInDir returns the key of a file that landed in a freshly created shard
// directory before it was watched.
func (p *Diskv) keyInDir(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key := p.keyForPath(filepath.Join(dir, e.Name())); key != "" {
			return key
		}
	}
	return ""
}

// eventThrottle coalesces rapid change notifications so consumers reload once
// per burst of filesystem activity instead of on every single write. Nothing
// is sent once Stop has returned.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Key] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

// flush sends under the lock; send must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	if t.stopped {
		return
	}

	for eventType, keys := range pending {
		for key := range keys {
			send(Event{Type: eventType, Key: key})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
