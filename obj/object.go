package obj

import "github.com/milk9111/athora/common"

// Kind tags what a level object does.
type Kind int

const (
	KindPlain Kind = iota
	KindSolid
	KindExitDoor
	KindSign
	KindLava
	KindDroppedItem
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindExitDoor:
		return "exit"
	case KindSign:
		return "sign"
	case KindLava:
		return "lava"
	case KindDroppedItem:
		return "dropped_item"
	default:
		return "plain"
	}
}

// Object is a placed tile or interactable owned by a Level.
type Object struct {
	Kind    Kind
	Texture string
	Rect    common.Rect

	// Popup is shown while the player overlaps an interactive object.
	Popup    string
	Contents string
	Sound    string
	Damage   int
	Item     Item

	gravity int
}

func (o *Object) Solid() bool {
	return o != nil && o.Kind == KindSolid
}

// Interactive reports whether the object responds to the interact key.
func (o *Object) Interactive() bool {
	if o == nil {
		return false
	}
	switch o.Kind {
	case KindExitDoor, KindSign, KindLava, KindDroppedItem:
		return true
	}
	return false
}

// Interact returns the event this object posts when triggered, or nil.
func (o *Object) Interact() Event {
	if o == nil {
		return nil
	}
	switch o.Kind {
	case KindExitDoor:
		return DoorEntered{Door: o}
	case KindSign:
		return SignRead{Contents: o.Contents, Sound: o.Sound}
	case KindLava:
		return LavaTouched{Damage: o.Damage, Sound: o.Sound}
	case KindDroppedItem:
		return ItemPickedUp{Object: o}
	}
	return nil
}
