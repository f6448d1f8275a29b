package obj

import (
	"fmt"
	"strings"
)

// Key is a logical game action, independent of the physical binding.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyJump
	KeyUse
	KeyDrop
	KeyReload
	KeyRestart
	KeyInteract
	KeyPause
	KeyConfirm
	KeySlot1
	KeySlot2
	KeyStart
	KeyQuit
)

var keyNames = map[Key]string{
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyJump:     "jump",
	KeyUse:      "use",
	KeyDrop:     "drop",
	KeyReload:   "reload",
	KeyRestart:  "restart",
	KeyInteract: "interact",
	KeyPause:    "pause",
	KeyConfirm:  "confirm",
	KeySlot1:    "slot1",
	KeySlot2:    "slot2",
	KeyStart:    "start",
	KeyQuit:     "quit",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "none"
}

// ParseKey maps an action name from controls.yaml to a Key.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("unknown action %q", name)
}

// Input is a per-tick snapshot of held actions.
type Input interface {
	Held(k Key) bool
}

// KeySet is an Input backed by a set of held keys.
type KeySet map[Key]bool

func (s KeySet) Held(k Key) bool {
	return s[k]
}
