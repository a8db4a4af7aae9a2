package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionJump            // Space, W, Up - start a jump (or mid-air jump)
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R key - restart game after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P, Escape - pause/unpause game
	ActionHitboxes        // H key - toggle collider debug overlay
	ActionScores          // S key - view the scoreboard after a run
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionHitboxes:
		return "Hitboxes"
	case ActionScores:
		return "Scores"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// Pressed actions fire once on the tick the key went down; held actions
// stay set for as long as the key is considered held. Terminals do not
// report key-up events, so the platform layer synthesizes "held" from
// key-repeat timing.
type InputFrame struct {
	// Pressed maps actions to whether they were newly triggered this frame.
	Pressed map[Action]bool
	// Held maps actions to whether they are still being held this frame.
	Held map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Pressed: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as newly triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
}

// SetHeld marks an action as held for this frame.
func (f *InputFrame) SetHeld(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the given action was newly triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Pressed == nil {
		return false
	}
	return f.Pressed[a]
}

// IsHeld returns true if the given action is held this frame.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Clear resets pressed actions for the next frame, keeping held state.
func (f *InputFrame) Clear() {
	for k := range f.Pressed {
		delete(f.Pressed, k)
	}
}

// ClearAll resets both pressed and held actions.
func (f *InputFrame) ClearAll() {
	f.Clear()
	for k := range f.Held {
		delete(f.Held, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Pressed {
		clone.Pressed[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
