package obj

// Transition runs a fade-out, swap, fade-in sequence counted in ticks.
type Transition struct {
	Active   bool
	Phase    int // 1: fading to black, 2: fading back
	Frames   int
	Duration int
	// OnPeak is called once the screen is fully dark.
	OnPeak func()
}

func NewTransition(duration int) *Transition {
	if duration <= 0 {
		duration = 1
	}
	return &Transition{Duration: duration}
}

// Enter starts the transition unless one is running.
func (t *Transition) Enter() {
	if t.Active {
		return
	}
	t.Active = true
	t.Phase = 1
	t.Frames = 0
}

// Update advances the transition and reports whether it is still running.
func (t *Transition) Update() bool {
	if !t.Active {
		return false
	}
	t.Frames++
	switch t.Phase {
	case 1:
		if t.Frames >= t.Duration {
			if t.OnPeak != nil {
				t.OnPeak()
			}
			t.Phase = 2
			t.Frames = 0
		}
	case 2:
		if t.Frames >= t.Duration {
			t.Active = false
			t.Phase = 0
			t.Frames = 0
		}
	}
	return t.Active
}

// Alpha is the overlay opacity for the current frame.
func (t *Transition) Alpha() float64 {
	if !t.Active {
		return 0
	}
	a := float64(t.Frames) / float64(t.Duration)
	if t.Phase == 2 {
		a = 1 - a
	}
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
