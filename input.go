package main

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/athora/obj"
	"github.com/milk9111/athora/prefabs"
)

// Keyboard maps physical keys to game actions using controls.yaml.
type Keyboard struct {
	bindings map[obj.Key][]ebiten.Key
	order    []obj.Key
}

func NewKeyboard(spec prefabs.ControlsSpec) (*Keyboard, error) {
	byName := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		byName[k.String()] = k
	}

	kb := &Keyboard{bindings: make(map[obj.Key][]ebiten.Key, len(spec.Bindings))}
	for action, names := range spec.Bindings {
		key, err := obj.ParseKey(action)
		if err != nil {
			return nil, fmt.Errorf("controls: %w", err)
		}
		for _, name := range names {
			ek, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("controls: %s: unknown key %q", action, name)
			}
			kb.bindings[key] = append(kb.bindings[key], ek)
		}
		kb.order = append(kb.order, key)
	}
	sort.Slice(kb.order, func(i, j int) bool { return kb.order[i] < kb.order[j] })
	return kb, nil
}

// Held implements obj.Input.
func (kb *Keyboard) Held(key obj.Key) bool {
	for _, ek := range kb.bindings[key] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

// Pressed returns the actions whose keys went down this tick.
func (kb *Keyboard) Pressed() []obj.Key {
	var out []obj.Key
	for _, key := range kb.order {
		for _, ek := range kb.bindings[key] {
			if inpututil.IsKeyJustPressed(ek) {
				out = append(out, key)
				break
			}
		}
	}
	return out
}
