package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

var (
	dirMu sync.RWMutex
	dir   = "prefabs"
)

// SetDir changes the on-disk directory consulted before the embedded copies.
func SetDir(path string) {
	dirMu.Lock()
	defer dirMu.Unlock()
	dir = path
}

// Dir returns the on-disk override directory.
func Dir() string {
	dirMu.RLock()
	defer dirMu.RUnlock()
	return dir
}

// Load returns the named prefab, preferring a copy on disk so specs can be
// tuned without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefabs/") {
		return strings.TrimPrefix(s, "prefabs/")
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir(), filepath.FromSlash(clean))
}
