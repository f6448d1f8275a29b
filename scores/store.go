package scores

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Result is the outcome of one run.
type Result struct {
	Session string    `json:"session"`
	Score   int       `json:"score"`
	Levels  int       `json:"levels"`
	Kills   int       `json:"kills"`
	Ticks   int       `json:"ticks"`
	At      time.Time `json:"at"`
}

// Store records run results and returns the best ones.
type Store interface {
	Record(ctx context.Context, r Result) error
	Top(ctx context.Context, n int) ([]Result, error)
	Close() error
}

// Open returns a Redis store for redis:// URLs and a memory store for an
// empty URL or "memory".
func Open(ctx context.Context, url string, logger *slog.Logger) (Store, error) {
	switch {
	case url == "" || url == "memory":
		return NewMemoryStore(), nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return NewRedisStore(ctx, url, logger)
	}
	return nil, fmt.Errorf("scores: unsupported store %q", url)
}

// MemoryStore keeps results for the lifetime of the process.
type MemoryStore struct {
	mu      sync.Mutex
	results []Result
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Record(_ context.Context, r Result) error {
	if r.At.IsZero() {
		r.At = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *MemoryStore) Top(_ context.Context, n int) ([]Result, error) {
	m.mu.Lock()
	out := make([]Result, len(m.results))
	copy(out, m.results)
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
