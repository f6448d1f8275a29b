package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed *.txt
var LevelsFS embed.FS

// ErrNoLevels is returned when a source holds no level files.
var ErrNoLevels = errors.New("levels: no level files found")

// Source is the raw text of one level file.
type Source struct {
	Name  string
	Title string
	Text  string
}

// Title returns the display title for the level at index i.
func Title(i int) string {
	return fmt.Sprintf("Level %d", i+1)
}

// Load reads every *.txt file in dir, or the embedded set when dir is empty.
func Load(dir string) ([]Source, error) {
	if dir == "" {
		return LoadFS(LevelsFS)
	}
	srcs, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", dir, err)
	}
	return srcs, nil
}

// LoadFS reads every top-level *.txt file of fsys sorted by file name.
func LoadFS(fsys fs.FS) ([]Source, error) {
	names, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoLevels
	}
	sort.Strings(names)

	out := make([]Source, 0, len(names))
	for i, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read level %s: %w", name, err)
		}
		out = append(out, Source{Name: name, Title: Title(i), Text: string(data)})
	}
	return out, nil
}

// Index returns the position of the level file named by p in srcs, matching
// on the base name so watcher paths resolve.
func Index(srcs []Source, p string) int {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	for i, s := range srcs {
		if s.Name == base {
			return i
		}
	}
	return -1
}

// ReadFile reads a single level file from disk.
func ReadFile(p string) (string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("read level %s: %w", p, err)
	}
	return string(data), nil
}
