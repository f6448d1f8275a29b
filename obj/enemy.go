package obj

import (
	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/prefabs"
)

// npcState is the interface each concrete NPC state implements.
type npcState interface {
	Enter(n *NPC)
	Update(n *NPC, lvl *Level, seen bool)
	Name() string
}

type dormantState struct{}

func (dormantState) Name() string { return "dormant" }
func (dormantState) Enter(n *NPC) {
	n.Alerted = false
	n.AlertTicks = 0
}
func (dormantState) Update(n *NPC, lvl *Level, seen bool) {
	if seen {
		n.setState(stateAlerted)
	}
}

type alertedState struct{}

func (alertedState) Name() string { return "alerted" }
func (alertedState) Enter(n *NPC) {
	if !n.Alerted {
		n.Alerted = true
		n.AlertTicks = 0
	}
}
func (alertedState) Update(n *NPC, lvl *Level, seen bool) {
	if !seen {
		n.setState(stateDormant)
		return
	}
	n.AlertTicks++
	if n.AlertTicks >= n.fireDelay && lvl.OwnBullets(n) < n.maxBullets {
		n.setState(stateFiring)
	}
}

// firingState fires once on entry and hands back to alerted on the next tick.
type firingState struct{}

func (firingState) Name() string { return "firing" }
func (firingState) Enter(n *NPC) {
	n.AlertTicks = 0
	n.pendingShot = true
}
func (firingState) Update(n *NPC, lvl *Level, seen bool) {
	n.setState(stateAlerted)
	stateAlerted.Update(n, lvl, seen)
}

var (
	stateDormant npcState = dormantState{}
	stateAlerted npcState = alertedState{}
	stateFiring  npcState = firingState{}
)

// NPC is a stationary robot that fires at the player while it sees them.
type NPC struct {
	Rect         common.Rect
	Health       int
	MaxHealth    int
	Facing       Direction
	Detect       common.Rect
	Alerted      bool
	AlertTicks   int
	Texture      string
	AlertTexture string

	gravity     int
	fireDelay   int
	maxBullets  int
	bullet      prefabs.BulletSpec
	state       npcState
	pendingShot bool
}

// NewNPC builds an NPC with its top-left corner at (x, y). health and
// texture override the robot defaults when set. tps is used when the robot
// leaves the fire delay at zero.
func NewNPC(x, y int, spec prefabs.RobotSpec, bullet prefabs.BulletSpec, tps, health int, texture string) *NPC {
	if health <= 0 {
		health = spec.Health
	}
	if texture == "" {
		texture = spec.Texture
	}
	delay := spec.FireDelayFrames
	if delay <= 0 {
		delay = tps
	}
	n := &NPC{
		Rect:         common.NewRect(x, y, spec.Width, spec.Height),
		Health:       health,
		MaxHealth:    health,
		Facing:       DirLeft,
		Detect:       common.NewRect(0, 0, spec.DetectWidth, spec.DetectHeight),
		Texture:      texture,
		AlertTexture: spec.AlertTexture,
		gravity:      spec.Gravity,
		fireDelay:    delay,
		maxBullets:   spec.MaxBullets,
		bullet:       bullet,
		state:        stateDormant,
	}
	n.recenter()
	return n
}

func (n *NPC) Faction() Faction { return FactionEnemy }

func (n *NPC) Dead() bool {
	return n == nil || n.Health <= 0
}

// State returns the current state name.
func (n *NPC) State() string {
	if n == nil || n.state == nil {
		return stateDormant.Name()
	}
	return n.state.Name()
}

func (n *NPC) setState(s npcState) {
	if n == nil || s == nil || n.state == s {
		return
	}
	n.state = s
	n.state.Enter(n)
}

// ChangeHealth adjusts health without any other side effect.
func (n *NPC) ChangeHealth(delta int) {
	if n == nil {
		return
	}
	n.Health += delta
}

func (n *NPC) recenter() {
	n.Detect.X = n.Rect.CenterX() - n.Detect.W/2
	n.Detect.Y = n.Rect.CenterY() - n.Detect.H/2
}

func (n *NPC) face(target common.Rect) {
	if target.CenterX() < n.Rect.CenterX() {
		n.Facing = DirLeft
	} else {
		n.Facing = DirRight
	}
}

// Update runs gravity, detection and firing for one tick. Bullets are added
// to lvl and announced on q.
func (n *NPC) Update(lvl *Level, p *Player, q *EventQueue) {
	if n == nil || lvl == nil {
		return
	}
	if n.state == nil {
		n.state = stateDormant
	}
	if dy := GravityStep(lvl, n.Rect, n.gravity, false); dy > 0 {
		n.Rect.Translate(0, dy)
	}
	n.recenter()

	seen := p != nil && !p.Dead() && n.Detect.Intersects(p.Rect)
	if seen {
		n.face(p.Rect)
	}
	n.state.Update(n, lvl, seen)

	if n.pendingShot {
		n.pendingShot = false
		lvl.AddBullet(NewBullet(n, n.Rect, n.Facing, n.bullet))
		q.Post(ShotFired{Sound: n.bullet.Sound})
	}
}
