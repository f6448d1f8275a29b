package obj

import (
	"errors"
	"fmt"

	"github.com/milk9111/athora/levels"
)

// ErrNoLevels is returned when a collection is built from nothing.
var ErrNoLevels = errors.New("no levels")

// Levels is the ordered level sequence and the player moving through it.
type Levels struct {
	Player *Player

	list   []*Level
	cursor int
}

// ParseAll parses every source in order.
func ParseAll(srcs []levels.Source, legend *Legend) ([]*Level, error) {
	out := make([]*Level, 0, len(srcs))
	for _, src := range srcs {
		lvl, err := Parse(src.Title, src.Text, legend)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Name, err)
		}
		out = append(out, lvl)
	}
	return out, nil
}

// NewLevels starts p at the spawn of the first level.
func NewLevels(list []*Level, p *Player) (*Levels, error) {
	if len(list) == 0 {
		return nil, ErrNoLevels
	}
	ls := &Levels{Player: p, list: list}
	ls.Spawn()
	return ls, nil
}

func (ls *Levels) Current() *Level { return ls.list[ls.cursor] }
func (ls *Levels) Index() int      { return ls.cursor }
func (ls *Levels) Len() int        { return len(ls.list) }

func (ls *Levels) HasNext() bool {
	return ls.cursor+1 < len(ls.list)
}

// Advance moves to the next level and respawns the player there. Past the
// last level it does nothing and returns false.
func (ls *Levels) Advance() bool {
	if !ls.HasNext() {
		return false
	}
	ls.cursor++
	ls.Spawn()
	return true
}

// Spawn unscrolls the current level and stands the player on its spawn cell.
func (ls *Levels) Spawn() {
	lvl := ls.Current()
	if lvl.Spawn == nil || ls.Player == nil {
		return
	}
	lvl.ResetScroll()
	r := SpawnRect(lvl.Spawn.Rect, ls.Player.Rect.W, ls.Player.Rect.H)
	ls.Player.Place(r.X, r.Y)
}

// Replace swaps the level at i, respawning the player when it is current.
func (ls *Levels) Replace(i int, lvl *Level) error {
	if i < 0 || i >= len(ls.list) {
		return fmt.Errorf("replace level %d: index out of range", i)
	}
	ls.list[i] = lvl
	if i == ls.cursor {
		ls.Spawn()
	}
	return nil
}
