package obj

import (
	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/prefabs"
)

// Faction identifies teams for hit attribution.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

// Shooter is anything that can fire a bullet.
type Shooter interface {
	Faction() Faction
}

// Bullet is a horizontally moving projectile. Origin is only used to tell
// who fired it; the bullet never owns its shooter.
type Bullet struct {
	Rect    common.Rect
	Speed   int
	Facing  Direction
	Damage  int
	Texture string
	Origin  Shooter
}

// NewBullet places a bullet just outside from on its facing edge, vertically
// centered.
func NewBullet(origin Shooter, from common.Rect, facing Direction, spec prefabs.BulletSpec) *Bullet {
	x := from.Right()
	if facing == DirLeft {
		x = from.X - spec.Width
	}
	y := from.Y + from.H/2
	return &Bullet{
		Rect:    common.NewRect(x, y, spec.Width, spec.Height),
		Speed:   spec.Speed,
		Facing:  facing,
		Damage:  spec.Damage,
		Texture: spec.Texture,
		Origin:  origin,
	}
}

// Advance moves the bullet one tick along its facing.
func (b *Bullet) Advance() {
	if b == nil {
		return
	}
	if b.Facing == DirLeft {
		b.Rect.Translate(-b.Speed, 0)
		return
	}
	b.Rect.Translate(b.Speed, 0)
}

func (b *Bullet) Faction() Faction {
	if b == nil || b.Origin == nil {
		return FactionNeutral
	}
	return b.Origin.Faction()
}
