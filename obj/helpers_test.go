package obj

import (
	"testing"

	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/prefabs"
	"github.com/stretchr/testify/require"
)

var testView = common.NewRect(0, 0, 832, 640)

type testWorld struct {
	bundle  *prefabs.Bundle
	catalog *Catalog
	legend  *Legend
	queue   *EventQueue
}

func newTestWorld(t *testing.T, mutate func(b *prefabs.Bundle)) *testWorld {
	t.Helper()
	b, err := prefabs.LoadBundle()
	require.NoError(t, err)
	if mutate != nil {
		mutate(b)
	}
	catalog := NewCatalog(b.Items, b.Bullet)
	legend, err := NewLegend(b, catalog)
	require.NoError(t, err)
	return &testWorld{bundle: b, catalog: catalog, legend: legend, queue: &EventQueue{}}
}

// newPlayer builds a player that never scrolls the world.
func (w *testWorld) newPlayer(t *testing.T) *Player {
	t.Helper()
	p, err := NewPlayer(w.bundle.Player, 0, w.catalog, w.queue)
	require.NoError(t, err)
	return p
}

func (w *testWorld) parse(t *testing.T, text string) *Level {
	t.Helper()
	lvl, err := Parse("test", text, w.legend)
	require.NoError(t, err)
	return lvl
}

func (w *testWorld) item(t *testing.T, name string) Item {
	t.Helper()
	it, err := w.catalog.NewItem(name, 0)
	require.NoError(t, err)
	return it
}

// floorLevel is a level with one wide solid floor whose top is at y.
func floorLevel(y int) *Level {
	return &Level{Objects: []*Object{
		{Kind: KindSolid, Texture: "wall", Rect: common.NewRect(-2000, y, 6000, 32)},
	}}
}
