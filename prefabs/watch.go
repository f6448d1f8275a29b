package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says what sort of file changed.
type ChangeKind int

const (
	ChangeLevel ChangeKind = iota + 1
	ChangePrefab
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeLevel:
		return "level"
	case ChangePrefab:
		return "prefab"
	}
	return "unknown"
}

// Change is one settled edit to a watched file.
type Change struct {
	Path string
	Kind ChangeKind
}

// DefaultSettle is how long a file must stay quiet before its change is
// reported. Editors often write a file several times per save.
const DefaultSettle = 100 * time.Millisecond

// Watcher reports edits to level and prefab files in the watched
// directories, once per burst of writes.
type Watcher struct {
	fs      *fsnotify.Watcher
	settle  time.Duration
	Changes chan Change
	Errors  chan error
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(settle time.Duration, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	w := &Watcher{
		fs:      fw,
		settle:  settle,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Changes)
	defer close(w.Errors)

	pending := make(map[string]ChangeKind)
	timer := time.NewTimer(w.settle)
	timer.Stop()
	var settled <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			kind, ok := Classify(ev.Name)
			if !ok {
				continue
			}
			pending[ev.Name] = kind
			timer.Reset(w.settle)
			settled = timer.C
		case <-settled:
			settled = nil
			if !w.flush(pending) {
				return
			}
			clear(pending)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			timer.Stop()
			return
		}
	}
}

// flush sends pending changes in path order. It returns false once the
// watcher is closed.
func (w *Watcher) flush(pending map[string]ChangeKind) bool {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		select {
		case w.Changes <- Change{Path: p, Kind: pending[p]}:
		case <-w.done:
			return false
		}
	}
	return true
}

// Classify reports the kind of a watched file, or false for files the game
// does not read.
func Classify(path string) (ChangeKind, bool) {
	switch {
	case IsLevelFile(path):
		return ChangeLevel, true
	case IsSpecFile(path):
		return ChangePrefab, true
	}
	return 0, false
}

func IsSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func IsLevelFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".txt"
}
