package gameplay

import (
	"fmt"
	"strings"
	"testing"

	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/levels"
	"github.com/milk9111/athora/obj"
	"github.com/milk9111/athora/prefabs"
	"github.com/milk9111/athora/scores"
	"github.com/stretchr/testify/require"
)

type blit struct {
	texture string
	rect    common.Rect
}

type recordingRenderer struct {
	blits []blit
	fills []string
	texts []string
}

func (r *recordingRenderer) Blit(texture string, rect common.Rect) {
	r.blits = append(r.blits, blit{texture, rect})
}

func (r *recordingRenderer) Fill(color string, alpha float64) {
	r.fills = append(r.fills, fmt.Sprintf("%s@%.2f", color, alpha))
}

func (r *recordingRenderer) Text(s string, size, x, y int) {
	r.texts = append(r.texts, s)
}

func (r *recordingRenderer) MeasureText(s string, size int) (int, int) {
	return len(s) * 7, 13
}

func (r *recordingRenderer) blitted(texture string) int {
	n := 0
	for _, b := range r.blits {
		if b.texture == texture {
			n++
		}
	}
	return n
}

func (r *recordingRenderer) hasText(sub string) bool {
	for _, s := range r.texts {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type recordingAudio struct {
	played   []string
	channels map[string][]string
}

func (a *recordingAudio) Play(sound string) {
	a.played = append(a.played, sound)
}

func (a *recordingAudio) PlayOn(channel, sound string) {
	if a.channels == nil {
		a.channels = map[string][]string{}
	}
	a.channels[channel] = append(a.channels[channel], sound)
}

// testLevel is a closed room. Columns: S=2, sign=6, potion=10, lava=13,
// NPC=22, door=24.
const testLevel = "" +
	"WWWWWWWWWWWWWWWWWWWWWWWWWW\n" +
	"W                        W\n" +
	"W                        W\n" +
	"W S   !   H  L        R TW\n" +
	"WWWWWWWWWWWWWWWWWWWWWWWWWW"

const floorY = 128

type harness struct {
	game  *Game
	audio *recordingAudio
	runs  []scores.Result
}

func newHarness(t *testing.T, texts ...string) *harness {
	t.Helper()
	if len(texts) == 0 {
		texts = []string{testLevel}
	}
	b, err := prefabs.LoadBundle()
	require.NoError(t, err)
	b.Game.ScrollMargin = 0

	srcs := make([]levels.Source, len(texts))
	for i, text := range texts {
		srcs[i] = levels.Source{Name: fmt.Sprintf("%02d.txt", i+1), Title: levels.Title(i), Text: text}
	}

	h := &harness{audio: &recordingAudio{}}
	g, err := New(b, srcs,
		WithAudio(h.audio),
		WithSession("test-session"),
		WithLogger(quietLogger()),
		WithRunEnd(func(r scores.Result) { h.runs = append(h.runs, r) }),
	)
	require.NoError(t, err)
	h.game = g
	return h
}

func (h *harness) press(t *testing.T, keys ...obj.Key) {
	t.Helper()
	for _, k := range keys {
		h.game.Post(obj.KeyPressed{Key: k})
	}
	require.NoError(t, h.game.Tick(obj.KeySet{}))
}

func (h *harness) tick(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, h.game.Tick(obj.KeySet{}))
	}
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	h.press(t, obj.KeyStart)
	require.Equal(t, StatePlaying, h.game.State())
}

// standAt moves the player onto the floor at column col.
func (h *harness) standAt(col int) {
	p := h.game.Player
	p.Place(col*32, floorY-p.Rect.H)
}

func (h *harness) level() *obj.Level {
	return h.game.Levels.Current()
}
