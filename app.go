package main

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/athora/assets"
	"github.com/milk9111/athora/gameplay"
	"github.com/milk9111/athora/obj"
	"github.com/milk9111/athora/prefabs"
)

// App adapts gameplay.Game to ebiten.
type App struct {
	game    *gameplay.Game
	keys    *Keyboard
	screen  *Screen
	speaker *Speaker
	title   *ebitenui.UI
	pause   *ebitenui.UI
	width   int
	height  int

	texDir  string
	changes <-chan prefabs.Change
	log     *slog.Logger
}

func NewApp(game *gameplay.Game, b *prefabs.Bundle, keys *Keyboard, textures *assets.Textures, speaker *Speaker, logger *slog.Logger) *App {
	a := &App{
		game:    game,
		keys:    keys,
		screen:  &Screen{textures: textures},
		speaker: speaker,
		width:   b.Game.ScreenWidth,
		height:  b.Game.ScreenHeight,
		log:     logger,
	}
	post := func(e obj.Event) func() {
		return func() { a.game.Post(e) }
	}
	a.title = NewMenuUI(a.width, a.height,
		menuButton{"Play", post(obj.KeyPressed{Key: obj.KeyStart})},
		menuButton{"Quit", post(obj.QuitRequested{})},
	)
	a.pause = NewMenuUI(a.width, a.height,
		menuButton{"Resume", post(obj.KeyPressed{Key: obj.KeyPause})},
		menuButton{"Quit", post(obj.QuitRequested{})},
	)
	return a
}

// Watch forwards changed file paths from w into the game each tick.
func (a *App) Watch(w *prefabs.Watcher, textureDir string) {
	a.changes = w.Changes
	a.texDir = textureDir
	go func() {
		for err := range w.Errors {
			a.log.Warn("watch error", "error", err)
		}
	}()
}

func (a *App) Update() error {
	a.drainChanges()
	if ebiten.IsWindowBeingClosed() {
		a.game.Post(obj.QuitRequested{})
	}
	for _, k := range a.keys.Pressed() {
		a.game.Post(obj.KeyPressed{Key: k})
	}

	switch a.game.State() {
	case gameplay.StateTitle:
		a.title.Update()
	case gameplay.StatePaused:
		if !a.game.Player.Dead() {
			a.pause.Update()
		}
	}

	err := a.game.Tick(a.keys)
	if errors.Is(err, gameplay.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (a *App) drainChanges() {
	for {
		select {
		case c, ok := <-a.changes:
			if !ok {
				a.changes = nil
				return
			}
			a.fileChanged(c)
		default:
			return
		}
	}
}

func (a *App) fileChanged(c prefabs.Change) {
	a.log.Debug("file changed", "path", c.Path, "kind", c.Kind)
	switch c.Kind {
	case prefabs.ChangeLevel:
		a.game.Post(obj.LevelSourceChanged{Path: c.Path})
	case prefabs.ChangePrefab:
		a.reloadSpec(filepath.Base(c.Path))
	}
}

// reloadSpec applies prefab edits that only touch presentation. Anything
// else needs a restart.
func (a *App) reloadSpec(name string) {
	switch name {
	case "textures.yaml":
		spec, err := prefabs.LoadSpec[prefabs.TexturesSpec](name)
		if err != nil {
			a.log.Warn("prefab reload failed", "prefab", name, "error", err)
			return
		}
		tex, err := assets.NewTextures(spec, a.texDir)
		if err != nil {
			a.log.Warn("prefab reload failed", "prefab", name, "error", err)
			return
		}
		a.screen.textures = tex
	case "sounds.yaml":
		spec, err := prefabs.LoadSpec[prefabs.SoundsSpec](name)
		if err != nil {
			a.log.Warn("prefab reload failed", "prefab", name, "error", err)
			return
		}
		a.speaker.Reload(spec)
	default:
		a.log.Info("prefab changed, restart to apply", "prefab", name)
		return
	}
	a.log.Info("prefab reloaded", "prefab", name)
}

func (a *App) Draw(screen *ebiten.Image) {
	a.screen.dst = screen
	a.game.Draw(a.screen)

	switch a.game.State() {
	case gameplay.StateTitle:
		a.title.Draw(screen)
	case gameplay.StatePaused:
		if !a.game.Player.Dead() {
			a.pause.Draw(screen)
		}
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}
