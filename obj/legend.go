package obj

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/prefabs"
)

// ErrUnknownKind is returned for legend placements with an unsupported kind.
var ErrUnknownKind = errors.New("unknown placement kind")

const (
	defaultSignTexture = "signpost"
	defaultSignPopup   = "'F' to read"
	defaultSignSound   = "pop"
	defaultExitTexture = "trapdoor"
	defaultExitPopup   = "'F' to enter"
)

// Legend maps level text characters to the objects and NPCs they create.
type Legend struct {
	tile    int
	tps     int
	playerW int
	playerH int
	lava    int
	tiles   map[rune][]prefabs.PlacementSpec
	robot   prefabs.RobotSpec
	bullet  prefabs.BulletSpec
	catalog *Catalog
}

// NewLegend validates the legend in b and binds it to the item catalog.
func NewLegend(b *prefabs.Bundle, catalog *Catalog) (*Legend, error) {
	l := &Legend{
		tile:    b.Game.TileSize,
		tps:     b.Game.TPS,
		playerW: b.Player.Width,
		playerH: b.Player.Height,
		lava:    b.Game.LavaDamage,
		tiles:   make(map[rune][]prefabs.PlacementSpec, len(b.Legend.Tiles)),
		robot:   b.Robot,
		bullet:  b.Bullet,
		catalog: catalog,
	}
	for key, specs := range b.Legend.Tiles {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("legend key %q must be a single character", key)
		}
		for _, spec := range specs {
			if err := l.check(spec); err != nil {
				return nil, fmt.Errorf("legend %q: %w", key, err)
			}
		}
		l.tiles[runes[0]] = specs
	}
	return l, nil
}

func (l *Legend) check(spec prefabs.PlacementSpec) error {
	switch spec.Kind {
	case "plain", "solid", "spawn", "exit", "sign", "lava", "npc":
		return nil
	case "item":
		_, err := l.catalog.NewItem(spec.Item, spec.Heal)
		return err
	}
	return fmt.Errorf("%w %q", ErrUnknownKind, spec.Kind)
}

// Tile returns the cell size in pixels.
func (l *Legend) Tile() int { return l.tile }

// Symbols returns the known characters in sorted order.
func (l *Legend) Symbols() []rune {
	out := make([]rune, 0, len(l.tiles))
	for r := range l.tiles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known reports whether ch has a legend entry.
func (l *Legend) Known(ch rune) bool {
	_, ok := l.tiles[ch]
	return ok
}

// place adds everything ch creates at cell (col, row) to lvl and reports
// whether a spawn point was among them.
func (l *Legend) place(lvl *Level, ch rune, col, row int) (spawn *Object) {
	for _, spec := range l.tiles[ch] {
		x, y := col*l.tile, row*l.tile
		switch spec.Kind {
		case "npc":
			h := l.robot.Height
			lvl.NPCs = append(lvl.NPCs, NewNPC(x, y+l.tile-h, l.robot, l.bullet, l.tps, spec.Health, spec.Texture))
		case "item":
			item, err := l.catalog.NewItem(spec.Item, spec.Heal)
			if err != nil {
				continue
			}
			size := l.catalog.DroppedSize()
			lvl.Objects = append(lvl.Objects, l.catalog.Dropped(item, x, y+l.tile-size))
		default:
			o := l.object(spec, x, y)
			lvl.Objects = append(lvl.Objects, o)
			if spec.Kind == "spawn" {
				spawn = o
			}
		}
	}
	return spawn
}

// object builds a static object. Sizes other than one tile are anchored to
// the bottom-left of the cell.
func (l *Legend) object(spec prefabs.PlacementSpec, x, y int) *Object {
	w, h := spec.Width, spec.Height
	if w <= 0 {
		w = l.tile
	}
	if h <= 0 {
		h = l.tile
	}
	o := &Object{
		Texture:  spec.Texture,
		Rect:     common.NewRect(x, y+l.tile-h, w, h),
		Popup:    spec.Popup,
		Contents: spec.Contents,
		Sound:    spec.Sound,
	}
	switch spec.Kind {
	case "solid":
		o.Kind = KindSolid
	case "exit":
		o.Kind = KindExitDoor
		o.Texture = orDefault(o.Texture, defaultExitTexture)
		o.Popup = orDefault(o.Popup, defaultExitPopup)
	case "sign":
		o.Kind = KindSign
		o.Texture = orDefault(o.Texture, defaultSignTexture)
		o.Popup = orDefault(o.Popup, defaultSignPopup)
		o.Sound = orDefault(o.Sound, defaultSignSound)
	case "lava":
		o.Kind = KindLava
		o.Damage = l.lava
		if o.Damage <= 0 {
			o.Damage = 1
		}
	}
	return o
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
