package obj

// Event is a world occurrence drained once per tick by the game loop.
type Event interface {
	isEvent()
}

// KeyPressed is posted by the input adapter for every discrete press.
type KeyPressed struct {
	Key Key
}

// QuitRequested is posted when the window is closed or quit is chosen.
type QuitRequested struct{}

// HealthChanged is the only path by which the player's health changes.
type HealthChanged struct {
	Amount int
}

type PotionDrunk struct {
	Heal  int
	Sound string
}

// ItemPickedUp asks the loop to move a dropped item into the inventory.
type ItemPickedUp struct {
	Object *Object
}

type SignRead struct {
	Contents string
	Sound    string
}

type DoorEntered struct {
	Door *Object
}

type LavaTouched struct {
	Damage int
	Sound  string
}

type GunEmpty struct{}

type GunReloaded struct {
	Sound string
}

type ShotFired struct {
	Sound string
}

type NPCKilled struct {
	Score int
}

// LevelSourceChanged is posted by the file watcher when a level file changes.
type LevelSourceChanged struct {
	Path string
}

func (KeyPressed) isEvent()         {}
func (QuitRequested) isEvent()      {}
func (HealthChanged) isEvent()      {}
func (PotionDrunk) isEvent()        {}
func (ItemPickedUp) isEvent()       {}
func (SignRead) isEvent()           {}
func (DoorEntered) isEvent()        {}
func (LavaTouched) isEvent()        {}
func (GunEmpty) isEvent()           {}
func (GunReloaded) isEvent()        {}
func (ShotFired) isEvent()          {}
func (NPCKilled) isEvent()          {}
func (LevelSourceChanged) isEvent() {}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Post adds an event.
func (q *EventQueue) Post(evt Event) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue. Events posted while the
// returned slice is being handled are kept for the next drain.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
