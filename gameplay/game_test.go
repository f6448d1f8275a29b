package gameplay

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestTitleAcceptsOnlyStartAndQuit(t *testing.T) {
	h := newHarness(t)
	g := h.game
	assert.Equal(t, StateTitle, g.State())
	assert.Equal(t, "test-session", g.Session())

	h.press(t, obj.KeyPause, obj.KeyUse, obj.KeyInteract)
	assert.Equal(t, StateTitle, g.State())
	assert.Zero(t, g.Ticks(), "nothing simulates on the title screen")

	h.press(t, obj.KeyStart)
	assert.Equal(t, StatePlaying, g.State())
	assert.Equal(t, 1, g.Ticks())

	g.Post(obj.KeyPressed{Key: obj.KeyStart})
	g.Post(obj.QuitRequested{})
	assert.ErrorIs(t, g.Tick(nil), ErrQuit)
	require.Len(t, h.runs, 1)
	assert.Equal(t, "test-session", h.runs[0].Session)
}

func TestTitleQuitKey(t *testing.T) {
	h := newHarness(t)
	h.game.Post(obj.KeyPressed{Key: obj.KeyQuit})
	assert.ErrorIs(t, h.game.Tick(obj.KeySet{}), ErrQuit)
}

func TestPauseToggle(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	ticks := h.game.Ticks()

	h.press(t, obj.KeyPause)
	assert.Equal(t, StatePaused, h.game.State())
	h.tick(t, 10)
	assert.Equal(t, ticks, h.game.Ticks(), "paused games are frozen")

	h.press(t, obj.KeyRestart)
	assert.Equal(t, StatePaused, h.game.State(), "restart needs a dead player")

	h.press(t, obj.KeyPause)
	assert.Equal(t, StatePlaying, h.game.State())

	h.press(t, obj.KeyQuit)
	assert.Equal(t, StatePaused, h.game.State(), "quit pauses first")
	h.game.Post(obj.KeyPressed{Key: obj.KeyQuit})
	assert.ErrorIs(t, h.game.Tick(obj.KeySet{}), ErrQuit)
}

func TestPlayerBulletKillsNPCInOneTick(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	lvl := h.level()
	require.Len(t, lvl.NPCs, 1)
	n := lvl.NPCs[0]
	n.Health = 1

	lvl.AddBullet(&obj.Bullet{
		Rect:   common.NewRect(n.Rect.X-10, n.Rect.Y+20, 10, 5),
		Speed:  5,
		Facing: obj.DirRight,
		Damage: 1,
		Origin: h.game.Player,
	})
	h.tick(t, 1)

	assert.Empty(t, lvl.NPCs)
	assert.Empty(t, lvl.Bullets)
	assert.Equal(t, 100, h.game.Player.Score)
	assert.Equal(t, 1, h.game.Result().Kills)
	assert.Equal(t, []obj.Event{obj.NPCKilled{Score: 100}}, h.game.Queue.Drain())
}

func TestPlayerBulletWoundsNPC(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	lvl := h.level()
	n := lvl.NPCs[0]
	require.Equal(t, 3, n.Health)

	lvl.AddBullet(obj.NewBullet(h.game.Player, n.Rect.Shifted(-n.Rect.W-9, 0), obj.DirRight, h.game.bundle.Bullet))
	h.tick(t, 1)
	assert.Equal(t, 2, n.Health)
	assert.Len(t, lvl.NPCs, 1)
	assert.Zero(t, h.game.Player.Score)
}

func TestNPCBulletHurtsPlayer(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	lvl := h.level()
	p := h.game.Player
	n := lvl.NPCs[0]

	lvl.AddBullet(&obj.Bullet{
		Rect:   common.NewRect(p.Rect.Right()+1, p.Rect.Y+10, 10, 5),
		Speed:  5,
		Facing: obj.DirLeft,
		Damage: 1,
		Origin: n,
	})
	h.tick(t, 1)
	assert.Empty(t, lvl.Bullets)
	assert.Equal(t, 10, p.Health, "damage lands when the event drains")

	h.tick(t, 1)
	assert.Equal(t, 9, p.Health)
	assert.Equal(t, []string{soundHurt}, h.audio.channels[channelDamage])
	assert.Equal(t, colorDamage, h.game.flashColor)
}

func TestBulletsStopAtWallsAndScreenEdge(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	lvl := h.level()
	p := h.game.Player
	bullet := h.game.bundle.Bullet

	wall := obj.NewBullet(p, common.NewRect(790, 100, 10, 5), obj.DirRight, bullet)
	gone := obj.NewBullet(p, common.NewRect(-20, 100, 10, 5), obj.DirLeft, bullet)
	flying := obj.NewBullet(p, common.NewRect(300, 40, 10, 5), obj.DirRight, bullet)
	lvl.AddBullet(wall)
	lvl.AddBullet(gone)
	lvl.AddBullet(flying)

	h.tick(t, 1)
	assert.Equal(t, []*obj.Bullet{flying}, lvl.Bullets)
}

func TestDeathPausesAndPlaysSoundOnce(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	g := h.game

	g.Player.ChangeHP(-20)
	h.tick(t, 1)
	assert.Equal(t, 0, g.Player.Health)
	assert.Equal(t, StatePaused, g.State())

	g.Player.ChangeHP(-1)
	h.tick(t, 30)
	assert.Equal(t, []string{soundDeath}, h.audio.channels[channelDeath])
	assert.Equal(t, []string{soundHurt}, h.audio.channels[channelDamage], "damage after death is ignored")

	h.press(t, obj.KeyPause)
	assert.Equal(t, StatePaused, g.State(), "dead players cannot unpause")

	r := &recordingRenderer{}
	g.Draw(r)
	assert.True(t, r.hasText("You died"))

	h.press(t, obj.KeyRestart)
	assert.Equal(t, StateTitle, g.State())
	assert.Equal(t, 10, g.Player.Health)
	require.Len(t, h.runs, 1)

	h.start(t)
	g.Player.ChangeHP(-20)
	h.tick(t, 2)
	assert.Len(t, h.audio.channels[channelDeath], 2, "a new death plays again")
}

func TestLavaBurnsOncePerFlash(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.standAt(13)

	h.tick(t, 20)
	assert.Equal(t, 9, h.game.Player.Health)
	h.tick(t, 20)
	assert.Equal(t, 8, h.game.Player.Health)
	assert.Contains(t, h.audio.played, "burn")
}

func TestInteractWithSign(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.standAt(6)

	h.press(t, obj.KeyInteract)
	h.tick(t, 1)
	assert.Contains(t, h.game.Message(), "Welcome to Athora!")
	assert.Equal(t, []string{"pop"}, h.audio.played)

	r := &recordingRenderer{}
	h.game.Draw(r)
	assert.True(t, r.hasText("to move!"))
	assert.Equal(t, 1, r.blitted("sign_panel"))

	h.press(t, obj.KeyConfirm)
	assert.Empty(t, h.game.Message())
}

func TestPickUpAndDrinkPotion(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	p := h.game.Player
	h.standAt(10)

	h.press(t, obj.KeyInteract)
	h.tick(t, 1)
	require.NotNil(t, p.Inventory[1])
	assert.Equal(t, 1, p.Selected)
	assert.Nil(t, h.level().HoveredInteractive(p.Rect))

	p.Health = 5
	h.press(t, obj.KeyUse)
	assert.Nil(t, p.Inventory[1])
	h.tick(t, 2)
	assert.Equal(t, 10, p.Health, "the level's potion heals 10, clamped")
	assert.Contains(t, h.audio.played, "drink")
	assert.Equal(t, []string{soundHeal}, h.audio.channels[channelDamage])
}

func TestInventoryKeys(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	p := h.game.Player
	lvl := h.level()

	h.press(t, obj.KeyUse, obj.KeyUse, obj.KeyUse, obj.KeyUse)
	assert.Len(t, lvl.Bullets, 3)
	_, empty := p.NeedsReload()
	assert.True(t, empty)

	r := &recordingRenderer{}
	h.game.Draw(r)
	assert.True(t, r.hasText("'R' to reload"))
	assert.True(t, r.hasText("0/3"))

	h.press(t, obj.KeyReload)
	_, empty = p.NeedsReload()
	assert.False(t, empty)

	h.press(t, obj.KeySlot2)
	assert.Equal(t, 1, p.Selected)
	h.press(t, obj.KeySlot1, obj.KeyDrop)
	assert.Nil(t, p.Inventory[0])
}

func TestDoorTransitionsToNextLevel(t *testing.T) {
	h := newHarness(t, testLevel, "WWWW\nW  W\nW  W\nWS W\nWWWW")
	h.start(t)
	g := h.game
	h.standAt(24)
	ticks := g.Ticks()

	h.press(t, obj.KeyInteract)
	h.tick(t, 1)
	assert.Equal(t, StateTransitioning, g.State())
	assert.Contains(t, h.audio.played, "portal")

	h.tick(t, 29)
	assert.Equal(t, 1, g.Levels.Index(), "the level swaps at the darkest frame")
	assert.Equal(t, StateTransitioning, g.State())
	assert.Equal(t, 32, g.Player.Rect.X)

	h.tick(t, 30)
	assert.Equal(t, StatePlaying, g.State())
	assert.Equal(t, ticks+1, g.Ticks(), "simulation is frozen while transitioning")
	assert.Equal(t, 1, g.Result().Levels)
}

func TestDoorOnLastLevelShowsMessage(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.standAt(24)

	h.press(t, obj.KeyInteract)
	h.tick(t, 1)
	assert.Equal(t, StatePlaying, h.game.State())
	assert.Equal(t, "This portal doesn't lead\nanywhere.", h.game.Message())
	assert.Equal(t, 0, h.game.Levels.Index())
}

func TestLevelHotReload(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "01.txt")

	require.NoError(t, os.WriteFile(path, []byte("WWWWWW\nW    W\nW    W\nW   SW\nWWWWWW"), 0o644))
	h.game.Post(obj.LevelSourceChanged{Path: path})
	h.tick(t, 1)
	assert.Equal(t, 128, h.game.Player.Rect.X)
	assert.Empty(t, h.level().NPCs)

	require.NoError(t, os.WriteFile(path, []byte("WWWW"), 0o644))
	h.game.Post(obj.LevelSourceChanged{Path: path})
	h.tick(t, 1)
	assert.Equal(t, 128, h.game.Player.Rect.X, "broken edits keep the loaded level")

	h.game.Post(obj.LevelSourceChanged{Path: filepath.Join(dir, "99.txt")})
	h.tick(t, 1)
}

func TestDrawCullsAndShowsHUD(t *testing.T) {
	wide := "" +
		"WWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWW\n" +
		"W                                      W\n" +
		"W                                      W\n" +
		"W S                 R                  W\n" +
		"WWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWWW"
	h := newHarness(t, wide)

	r := &recordingRenderer{}
	h.game.Draw(r)
	assert.True(t, r.hasText("Athora"))
	assert.Zero(t, r.blitted("player"))

	h.start(t)
	r = &recordingRenderer{}
	h.game.Draw(r)
	assert.Equal(t, 1, r.blitted("player"))
	assert.Equal(t, 1, r.blitted("robot"))
	assert.Equal(t, 10, r.blitted("heart_full"))
	assert.Equal(t, 2, r.blitted("slot"))
	assert.Equal(t, 1, r.blitted("gun"))
	assert.True(t, r.hasText("Level 1"))
	assert.True(t, r.hasText("Score: 0"))
	assert.True(t, r.hasText("Pistol"))
	for _, b := range r.blits {
		if b.texture == "wall" {
			assert.True(t, b.rect.Intersects(h.game.Viewport), "off-screen walls are culled")
		}
	}
	assert.Less(t, r.blitted("wall"), 2*40+2*3)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatElapsed(59, 60))
	assert.Equal(t, "0:00:01", FormatElapsed(60, 60))
	assert.Equal(t, "1:01:01", FormatElapsed(60*3661, 60))
	assert.Equal(t, "0:00:02", FormatElapsed(120, 0))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "title", StateTitle.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "transitioning", StateTransitioning.String())
}
