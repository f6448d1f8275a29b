package obj

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/milk9111/athora/common"
)

var (
	ErrNoSpawn        = errors.New("level has no spawn point")
	ErrMultipleSpawns = errors.New("level has more than one spawn point")
	ErrSpawnBlocked   = errors.New("player does not fit at the spawn point")
)

// Level holds the objects, NPCs and live bullets of one parsed level.
type Level struct {
	Title   string
	Source  string
	Objects []*Object
	NPCs    []*NPC
	Bullets []*Bullet
	Spawn   *Object

	offX, offY int
}

// Parse builds a level from rows of legend characters. Unknown characters
// and short rows are empty cells. Exactly one spawn character is required,
// with room for the player above it.
func Parse(title, text string, legend *Legend) (*Level, error) {
	lvl := &Level{Title: title, Source: text}
	spawns := 0
	for row, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		col := 0
		for _, ch := range line {
			if spawn := legend.place(lvl, ch, col, row); spawn != nil {
				lvl.Spawn = spawn
				spawns++
			}
			col++
		}
	}
	switch {
	case spawns == 0:
		return nil, fmt.Errorf("level %q: %w", title, ErrNoSpawn)
	case spawns > 1:
		return nil, fmt.Errorf("level %q: %w (%d found)", title, ErrMultipleSpawns, spawns)
	}
	if r := SpawnRect(lvl.Spawn.Rect, legend.playerW, legend.playerH); Blocked(lvl, r, false) {
		return nil, fmt.Errorf("level %q: %w (player %dx%d at %d,%d)", title, ErrSpawnBlocked, r.W, r.H, r.X, r.Y)
	}
	return lvl, nil
}

// SpawnRect is where a w×h player stands on spawn: left-aligned and resting
// on the cell's bottom edge.
func SpawnRect(spawn common.Rect, w, h int) common.Rect {
	return common.NewRect(spawn.X, spawn.Bottom()-h, w, h)
}

// Scroll shifts everything in the level by (dx, dy).
func (l *Level) Scroll(dx, dy int) {
	if l == nil || (dx == 0 && dy == 0) {
		return
	}
	for _, o := range l.Objects {
		o.Rect.Translate(dx, dy)
	}
	for _, n := range l.NPCs {
		n.Rect.Translate(dx, dy)
		n.recenter()
	}
	for _, b := range l.Bullets {
		b.Rect.Translate(dx, dy)
	}
	l.offX += dx
	l.offY += dy
}

// Offset returns the total scroll applied since parsing.
func (l *Level) Offset() (int, int) {
	return l.offX, l.offY
}

// ResetScroll undoes all scrolling.
func (l *Level) ResetScroll() {
	l.Scroll(-l.offX, -l.offY)
}

// Visible returns the objects and NPCs that overlap view.
func (l *Level) Visible(view common.Rect) ([]*Object, []*NPC) {
	var objs []*Object
	for _, o := range l.Objects {
		if o.Rect.Intersects(view) {
			objs = append(objs, o)
		}
	}
	var npcs []*NPC
	for _, n := range l.NPCs {
		if n.Rect.Intersects(view) {
			npcs = append(npcs, n)
		}
	}
	return objs, npcs
}

func (l *Level) AddObject(o *Object) {
	if o != nil {
		l.Objects = append(l.Objects, o)
	}
}

func (l *Level) RemoveObject(o *Object) {
	l.Objects = slices.DeleteFunc(l.Objects, func(x *Object) bool { return x == o })
}

// Solids yields every solid object.
func (l *Level) Solids() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		if l == nil {
			return
		}
		for _, o := range l.Objects {
			if o.Solid() && !yield(o) {
				return
			}
		}
	}
}

func (l *Level) AddBullet(b *Bullet) {
	if l != nil && b != nil {
		l.Bullets = append(l.Bullets, b)
	}
}

func (l *Level) RemoveBullet(b *Bullet) {
	l.Bullets = slices.DeleteFunc(l.Bullets, func(x *Bullet) bool { return x == b })
}

func (l *Level) RemoveNPC(n *NPC) {
	l.NPCs = slices.DeleteFunc(l.NPCs, func(x *NPC) bool { return x == n })
}

// OwnBullets counts live bullets fired by s.
func (l *Level) OwnBullets(s Shooter) int {
	if l == nil {
		return 0
	}
	count := 0
	for _, b := range l.Bullets {
		if b.Origin == s {
			count++
		}
	}
	return count
}

// HoveredInteractive returns the last interactive object overlapping r, so
// items dropped on top of a tile win over it.
func (l *Level) HoveredInteractive(r common.Rect) *Object {
	for i := len(l.Objects) - 1; i >= 0; i-- {
		o := l.Objects[i]
		if o.Interactive() && o.Rect.Intersects(r) {
			return o
		}
	}
	return nil
}

// LavaAt returns a lava object overlapping r.
func (l *Level) LavaAt(r common.Rect) *Object {
	for _, o := range l.Objects {
		if o.Kind == KindLava && o.Rect.Intersects(r) {
			return o
		}
	}
	return nil
}

// NPCAt returns the first NPC overlapping r.
func (l *Level) NPCAt(r common.Rect) *NPC {
	for _, n := range l.NPCs {
		if n.Rect.Intersects(r) {
			return n
		}
	}
	return nil
}

// SolidAt reports whether r overlaps a solid object.
func (l *Level) SolidAt(r common.Rect) bool {
	return Blocked(l, r, false)
}

// Update lets dropped items fall and runs every NPC for one tick.
func (l *Level) Update(p *Player, q *EventQueue) {
	if l == nil {
		return
	}
	for _, o := range l.Objects {
		if o.Kind != KindDroppedItem {
			continue
		}
		if dy := GravityStep(l, o.Rect, o.gravity, false); dy > 0 {
			o.Rect.Translate(0, dy)
		}
	}
	for _, n := range slices.Clone(l.NPCs) {
		n.Update(l, p, q)
	}
}
