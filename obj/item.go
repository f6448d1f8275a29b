package obj

import (
	"errors"
	"fmt"

	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/prefabs"
)

// ErrUnknownItem is returned for item names the catalog cannot build.
var ErrUnknownItem = errors.New("unknown item")

// Item is something the player can hold in an inventory slot.
type Item interface {
	Name() string
	Texture() string
	// Use applies the item for p. Items that are consumed clear their own slot.
	Use(p *Player, lvl *Level)
}

type Potion struct {
	name    string
	texture string
	Heal    int
	Sound   string
}

func (i *Potion) Name() string    { return i.name }
func (i *Potion) Texture() string { return i.texture }

func (i *Potion) Use(p *Player, lvl *Level) {
	if p == nil {
		return
	}
	p.clearItem(i)
	p.queue.Post(PotionDrunk{Heal: i.Heal, Sound: i.Sound})
}

type Gun struct {
	name       string
	texture    string
	Ammo       int
	Chamber    int
	ReloadText string
	Sound      string

	bullet prefabs.BulletSpec
}

func (i *Gun) Name() string    { return i.name }
func (i *Gun) Texture() string { return i.texture }

// Empty reports whether the chamber has run out.
func (i *Gun) Empty() bool { return i.Ammo <= 0 }

func (i *Gun) Use(p *Player, lvl *Level) {
	if p == nil {
		return
	}
	if i.Empty() {
		p.queue.Post(GunEmpty{})
		return
	}
	i.Ammo--
	lvl.AddBullet(NewBullet(p, p.Rect, p.Facing, i.bullet))
	p.queue.Post(ShotFired{Sound: i.bullet.Sound})
}

// Reload refills the chamber.
func (i *Gun) Reload() {
	i.Ammo = i.Chamber
}

// Catalog builds items and dropped-item objects from the item specs.
type Catalog struct {
	items  prefabs.ItemsSpec
	bullet prefabs.BulletSpec
}

func NewCatalog(items prefabs.ItemsSpec, bullet prefabs.BulletSpec) *Catalog {
	return &Catalog{items: items, bullet: bullet}
}

// NewItem builds the named item. heal overrides the potion default when
// positive.
func (c *Catalog) NewItem(name string, heal int) (Item, error) {
	switch name {
	case "potion":
		spec := c.items.Potion
		if heal <= 0 {
			heal = spec.Heal
		}
		return &Potion{name: spec.Name, texture: spec.Texture, Heal: heal, Sound: spec.Sound}, nil
	case "gun":
		spec := c.items.Gun
		return &Gun{
			name:       spec.Name,
			texture:    spec.Texture,
			Ammo:       spec.Chamber,
			Chamber:    spec.Chamber,
			ReloadText: spec.ReloadText,
			Sound:      spec.Sound,
			bullet:     c.bullet,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownItem, name)
}

// Dropped wraps item in a world object with its top-left corner at (x, y).
func (c *Catalog) Dropped(item Item, x, y int) *Object {
	size := c.items.DroppedSize
	return &Object{
		Kind:    KindDroppedItem,
		Texture: item.Texture(),
		Rect:    common.NewRect(x, y, size, size),
		Popup:   c.items.PickupPopup + item.Name(),
		Item:    item,
		gravity: c.items.DroppedGravity,
	}
}

func (c *Catalog) DroppedSize() int {
	return c.items.DroppedSize
}
