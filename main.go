package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/athora/assets"
	"github.com/milk9111/athora/gameplay"
	"github.com/milk9111/athora/levels"
	"github.com/milk9111/athora/logger"
	"github.com/milk9111/athora/prefabs"
	"github.com/milk9111/athora/scores"
)

func main() {
	levelsDir := flag.String("levels", "", "directory of level .txt files (embedded levels when empty)")
	configDir := flag.String("config", "prefabs", "directory of prefab overrides")
	texturesDir := flag.String("textures", "", "directory of PNG textures named after textures.yaml entries")
	debug := flag.Bool("debug", false, "enable debug mode: debug logging and hot reload")
	scoresURL := flag.String("scores", "", "score store: empty or \"memory\", or a redis:// URL")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		level = slog.LevelDebug
	}
	base := logger.Setup(level, *logFormat)
	session := uuid.NewString()
	lg := logger.WithSession(base, session)

	prefabs.SetDir(*configDir)
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		log.Fatal(err)
	}
	srcs, err := levels.Load(*levelsDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	store, err := scores.Open(ctx, *scoresURL, lg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	var wg sync.WaitGroup
	record := func(r scores.Result) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Record(ctx, r); err != nil {
				logger.WithError(lg, err).Error("Failed to record score")
			}
		}()
	}

	speaker := NewSpeaker(bundle.Sounds, lg)
	game, err := gameplay.New(bundle, srcs,
		gameplay.WithLogger(base),
		gameplay.WithSession(session),
		gameplay.WithAudio(speaker),
		gameplay.WithRunEnd(record),
	)
	if err != nil {
		log.Fatal(err)
	}

	keys, err := NewKeyboard(bundle.Controls)
	if err != nil {
		log.Fatal(err)
	}
	textures, err := assets.NewTextures(bundle.Textures, *texturesDir)
	if err != nil {
		log.Fatal(err)
	}
	app := NewApp(game, bundle, keys, textures, speaker, lg)

	if *debug {
		if w := watch(lg, *levelsDir, *configDir); w != nil {
			defer w.Close()
			app.Watch(w, *texturesDir)
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowSize(bundle.Game.ScreenWidth, bundle.Game.ScreenHeight)
	ebiten.SetWindowTitle(bundle.Game.Title)
	ebiten.SetTPS(bundle.Game.TPS)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	top, err := store.Top(ctx, 5)
	if err != nil {
		logger.WithError(lg, err).Warn("Failed to read scores")
		return
	}
	for i, r := range top {
		lg.Info("high score", "rank", i+1, "score", r.Score, "levels", r.Levels, "kills", r.Kills)
	}
}

// watch starts a watcher over the level and prefab directories that exist.
// Embedded levels are watched through ./levels when run from the repo.
func watch(lg *slog.Logger, levelsDir, configDir string) *prefabs.Watcher {
	if levelsDir == "" {
		levelsDir = "levels"
	}
	var dirs []string
	for _, dir := range []string{levelsDir, configDir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, filepath.Clean(dir))
		}
	}
	if len(dirs) == 0 {
		lg.Warn("nothing to watch")
		return nil
	}
	w, err := prefabs.NewWatcher(prefabs.DefaultSettle, dirs...)
	if err != nil {
		logger.WithError(lg, err).Warn("Failed to start watcher")
		return nil
	}
	lg.Info("watching for changes", "dirs", dirs)
	return w
}
