package obj

import (
	"testing"

	"github.com/milk9111/athora/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// npcScene stands an NPC at (100, 100) on a floor with the player far away.
func npcScene(t *testing.T) (*testWorld, *Level, *NPC, *Player) {
	t.Helper()
	w := newTestWorld(t, nil)
	lvl := floorLevel(156)
	n := NewNPC(100, 100, w.bundle.Robot, w.bundle.Bullet, w.bundle.Game.TPS, 0, "")
	lvl.NPCs = append(lvl.NPCs, n)
	p := w.newPlayer(t)
	p.Place(1000, 100)
	return w, lvl, n, p
}

func TestNPCDetectionBox(t *testing.T) {
	_, lvl, n, p := npcScene(t)
	n.Update(lvl, p, nil)
	assert.Equal(t, common.NewRect(116-250, 128-75, 500, 150), n.Detect)
	assert.Equal(t, "dormant", n.State())
	assert.Equal(t, 100, n.Rect.Y, "resting NPCs do not fall")
}

func TestNPCAlertThenFire(t *testing.T) {
	w, lvl, n, p := npcScene(t)
	q := w.queue

	p.Place(366, 100)
	n.Update(lvl, p, q)
	assert.Equal(t, "dormant", n.State(), "touching the box edge is not overlap")

	p.Place(365, 100)
	n.Update(lvl, p, q)
	require.Equal(t, "alerted", n.State())
	assert.True(t, n.Alerted)
	assert.Equal(t, 0, n.AlertTicks)
	assert.Equal(t, DirRight, n.Facing)

	for i := 1; i < 60; i++ {
		n.Update(lvl, p, q)
		require.Equal(t, "alerted", n.State(), "tick %d", i)
		require.Empty(t, lvl.Bullets)
	}

	n.Update(lvl, p, q)
	assert.Equal(t, "firing", n.State())
	require.Len(t, lvl.Bullets, 1)
	b := lvl.Bullets[0]
	assert.Same(t, n, b.Origin)
	assert.Equal(t, DirRight, b.Facing)
	assert.Equal(t, n.Rect.Right(), b.Rect.X)
	assert.Equal(t, n.Rect.Y+n.Rect.H/2, b.Rect.Y)
	assert.Equal(t, 0, n.AlertTicks)
	assert.Equal(t, []Event{ShotFired{Sound: "shoot"}}, q.Drain())

	n.Update(lvl, p, q)
	assert.Equal(t, "alerted", n.State())
	assert.Equal(t, 1, n.AlertTicks)
}

func TestNPCBulletCap(t *testing.T) {
	w, lvl, n, p := npcScene(t)
	p.Place(40, 100)

	for i := 0; i < 60*3+1; i++ {
		n.Update(lvl, p, w.queue)
	}
	require.Len(t, lvl.Bullets, 3)
	for _, b := range lvl.Bullets {
		assert.Equal(t, DirLeft, b.Facing)
	}

	for i := 0; i < 200; i++ {
		n.Update(lvl, p, w.queue)
	}
	assert.Len(t, lvl.Bullets, 3, "capped NPCs hold fire")
	assert.Equal(t, "alerted", n.State())

	lvl.RemoveBullet(lvl.Bullets[0])
	n.Update(lvl, p, w.queue)
	assert.Len(t, lvl.Bullets, 3)
	assert.Equal(t, "firing", n.State())

	other := NewNPC(0, 0, w.bundle.Robot, w.bundle.Bullet, 60, 0, "")
	lvl.AddBullet(NewBullet(other, other.Rect, DirLeft, w.bundle.Bullet))
	assert.Equal(t, 3, lvl.OwnBullets(n))
	assert.Equal(t, 1, lvl.OwnBullets(other))
}

func TestNPCLosesPlayer(t *testing.T) {
	w, lvl, n, p := npcScene(t)
	p.Place(200, 100)
	for i := 0; i < 30; i++ {
		n.Update(lvl, p, w.queue)
	}
	require.Equal(t, 29, n.AlertTicks)

	p.Place(2000, 100)
	n.Update(lvl, p, w.queue)
	assert.Equal(t, "dormant", n.State())
	assert.False(t, n.Alerted)
	assert.Zero(t, n.AlertTicks)

	p.Place(200, 100)
	n.Update(lvl, p, w.queue)
	assert.Equal(t, "alerted", n.State())
	p.Health = 0
	n.Update(lvl, p, w.queue)
	assert.Equal(t, "dormant", n.State(), "dead players are ignored")
}

func TestNPCInstancesDoNotShareState(t *testing.T) {
	w, lvl, n, p := npcScene(t)
	far := NewNPC(3000, 100, w.bundle.Robot, w.bundle.Bullet, 60, 0, "")
	lvl.NPCs = append(lvl.NPCs, far)
	p.Place(200, 100)

	lvl.Update(p, w.queue)
	assert.True(t, n.Alerted)
	assert.False(t, far.Alerted)
}

func TestNPCFallsAndChangeHealth(t *testing.T) {
	w := newTestWorld(t, nil)
	lvl := floorLevel(300)
	n := NewNPC(0, 0, w.bundle.Robot, w.bundle.Bullet, 60, 3, "robot_boss")
	assert.Equal(t, "robot_boss", n.Texture)
	assert.Equal(t, 3, n.MaxHealth)

	for i := 0; i < 100; i++ {
		n.Update(lvl, nil, w.queue)
	}
	assert.Equal(t, 300, n.Rect.Bottom())
	assert.Equal(t, n.Rect.CenterX()-250, n.Detect.X)

	n.ChangeHealth(-2)
	assert.False(t, n.Dead())
	n.ChangeHealth(-1)
	assert.True(t, n.Dead())
}
