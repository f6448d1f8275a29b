package obj

import (
	"fmt"

	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/prefabs"
)

// Direction is a bit set of movement directions.
type Direction uint8

const (
	DirLeft Direction = 1 << iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) Has(o Direction) bool { return d&o != 0 }

// InventorySize is the fixed number of inventory slots.
const InventorySize = 2

// Player is the controlled character. Health only changes through
// ApplyHealth, which the game loop calls while draining HealthChanged.
type Player struct {
	Rect      common.Rect
	Health    int
	MaxHealth int
	Facing    Direction
	Inventory [InventorySize]Item
	Selected  int
	Score     int
	Texture   string

	velocity int
	gravity  int
	margin   float64
	curve    []int
	jump     int
	jumping  bool
	prevX    int
	prevY    int

	queue   *EventQueue
	catalog *Catalog
}

// NewPlayer builds a player and fills the inventory from spec.StartItems.
func NewPlayer(spec prefabs.PlayerSpec, margin float64, catalog *Catalog, queue *EventQueue) (*Player, error) {
	maxHealth := spec.MaxHealth
	if maxHealth <= 0 {
		maxHealth = spec.Health
	}
	p := &Player{
		Rect:      common.NewRect(0, 0, spec.Width, spec.Height),
		Health:    common.Clamp(spec.Health, 0, maxHealth),
		MaxHealth: maxHealth,
		Facing:    DirRight,
		Texture:   spec.Texture,
		velocity:  spec.Velocity,
		gravity:   spec.Gravity,
		margin:    margin,
		curve:     JumpCurve(spec.JumpHeight, spec.JumpStep),
		queue:     queue,
		catalog:   catalog,
	}
	if len(spec.StartItems) > InventorySize {
		return nil, fmt.Errorf("player: %d start items exceed %d slots", len(spec.StartItems), InventorySize)
	}
	for i, name := range spec.StartItems {
		item, err := catalog.NewItem(name, 0)
		if err != nil {
			return nil, fmt.Errorf("player: start item: %w", err)
		}
		p.Inventory[i] = item
	}
	return p, nil
}

func (p *Player) Faction() Faction { return FactionPlayer }

func (p *Player) Dead() bool {
	return p == nil || p.Health <= 0
}

// Place moves the player to (x, y) and resets jump and movement state.
func (p *Player) Place(x, y int) {
	p.Rect = p.Rect.Moved(x, y)
	p.prevX, p.prevY = x, y
	p.jumping = false
	p.jump = 0
}

// Jumping reports whether the player is following the jump curve.
func (p *Player) Jumping() bool { return p.jumping }

// HandleMovement applies one tick of input-driven movement, jumping and
// gravity against lvl, scrolling lvl instead when the player nears the edge
// of view.
func (p *Player) HandleMovement(in Input, lvl *Level, view common.Rect) {
	if p == nil || lvl == nil {
		return
	}
	p.prevX, p.prevY = p.Rect.X, p.Rect.Y

	left, right := in.Held(KeyLeft), in.Held(KeyRight)
	dx := 0
	switch {
	case left && !right:
		dx = -p.velocity
		p.Facing = DirLeft
	case right && !left:
		dx = p.velocity
		p.Facing = DirRight
	}
	if dx != 0 && !Blocked(lvl, p.Rect.Shifted(dx, 0), true) {
		p.move(dx, 0, lvl, view)
	}

	if in.Held(KeyJump) && !p.jumping && len(p.curve) > 0 && Grounded(lvl, p.Rect, true) {
		p.jumping = true
		p.jump = 0
	}

	if p.jumping {
		dy := -p.curve[p.jump]
		if Blocked(lvl, p.Rect.Shifted(0, dy), true) {
			p.jumping = false
		} else {
			p.move(0, dy, lvl, view)
			p.jump++
			if p.jump >= len(p.curve) {
				p.jumping = false
			}
		}
		return
	}

	if dy := GravityStep(lvl, p.Rect, p.gravity, true); dy > 0 {
		p.move(0, dy, lvl, view)
	}
}

func (p *Player) move(dx, dy int, lvl *Level, view common.Rect) {
	sx, sy := EdgeScroll(p.Rect, dx, dy, view, p.margin)
	p.Rect.Translate(dx-sx, dy-sy)
	if sx != 0 || sy != 0 {
		lvl.Scroll(-sx, -sy)
		p.prevX -= sx
		p.prevY -= sy
	}
}

// Moving compares the previous and current positions. The returned
// direction has one bit per moving axis.
func (p *Player) Moving() (bool, Direction) {
	var d Direction
	switch {
	case p.Rect.X < p.prevX:
		d |= DirLeft
	case p.Rect.X > p.prevX:
		d |= DirRight
	}
	switch {
	case p.Rect.Y < p.prevY:
		d |= DirUp
	case p.Rect.Y > p.prevY:
		d |= DirDown
	}
	return d != 0, d
}

// ChangeHP requests a health change. The change is applied when the game
// loop drains the posted HealthChanged.
func (p *Player) ChangeHP(delta int) {
	if p == nil || delta == 0 {
		return
	}
	p.queue.Post(HealthChanged{Amount: delta})
}

// ApplyHealth mutates health, clamped to [0, MaxHealth], and returns the
// new value.
func (p *Player) ApplyHealth(delta int) int {
	p.Health = common.Clamp(p.Health+delta, 0, p.MaxHealth)
	return p.Health
}

// SelectedItem returns the item in the selected slot, or nil.
func (p *Player) SelectedItem() Item {
	return p.Inventory[p.Selected]
}

// SelectSlot selects slot i, clamped to the inventory.
func (p *Player) SelectSlot(i int) {
	p.Selected = common.Clamp(i, 0, InventorySize-1)
}

// AddToInventory moves a dropped item from lvl into the inventory. With the
// selected slot empty it fills that slot; otherwise the other slot is filled
// and selected; with both full the selected item is dropped into the world
// and replaced.
func (p *Player) AddToInventory(o *Object, lvl *Level) {
	if p == nil || o == nil || o.Item == nil {
		return
	}
	lvl.RemoveObject(o)

	other := 1 - p.Selected
	switch {
	case p.Inventory[p.Selected] == nil:
		p.Inventory[p.Selected] = o.Item
	case p.Inventory[other] == nil:
		p.Inventory[other] = o.Item
		p.Selected = other
	default:
		p.drop(lvl)
		p.Inventory[p.Selected] = o.Item
	}
}

// RemoveFromInventory drops the selected item into lvl. An empty slot is a
// no-op.
func (p *Player) RemoveFromInventory(lvl *Level) *Object {
	if p == nil {
		return nil
	}
	return p.drop(lvl)
}

func (p *Player) drop(lvl *Level) *Object {
	item := p.Inventory[p.Selected]
	if item == nil {
		return nil
	}
	p.Inventory[p.Selected] = nil

	o := p.catalog.Dropped(item, 0, p.Rect.Y)
	o.Rect.X = p.dropX(lvl, o.Rect)
	lvl.AddObject(o)
	return o
}

// dropX picks where a dropped item lands: beside the player on the facing
// side, else the other side, else over the player. The first spot clear of
// solids wins; if none is clear the item lands on the player's own x.
func (p *Player) dropX(lvl *Level, r common.Rect) int {
	ahead, behind := p.Rect.Right(), p.Rect.X-r.W
	if p.Facing == DirLeft {
		ahead, behind = behind, ahead
	}
	for _, x := range []int{ahead, behind, p.Rect.X, p.Rect.Right() - r.W} {
		if !Blocked(lvl, r.Moved(x, r.Y), false) {
			return x
		}
	}
	return p.Rect.X
}

func (p *Player) clearItem(item Item) {
	for i := range p.Inventory {
		if p.Inventory[i] == item {
			p.Inventory[i] = nil
		}
	}
}

// UseSelected uses the selected item, if any.
func (p *Player) UseSelected(lvl *Level) {
	if p == nil {
		return
	}
	if item := p.SelectedItem(); item != nil {
		item.Use(p, lvl)
	}
}

// Reload refills the selected gun. Other items ignore it.
func (p *Player) Reload() {
	if p == nil {
		return
	}
	gun, ok := p.SelectedItem().(*Gun)
	if !ok {
		return
	}
	gun.Reload()
	p.queue.Post(GunReloaded{Sound: gun.Sound})
}

// NeedsReload reports whether the selected item is an empty gun.
func (p *Player) NeedsReload() (*Gun, bool) {
	gun, ok := p.SelectedItem().(*Gun)
	return gun, ok && gun.Empty()
}
