package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up, W - flap
	ActionPause          // P, Esc - pause/resume
	ActionOption1        // 1, A - first option of the open popup
	ActionOption2        // 2, B - second option
	ActionOption3        // 3, C - third option (revival challenge)
	ActionOption4        // 4, D - fourth option (revival challenge)
	ActionConfirm        // Enter - continue / dismiss the open popup
	ActionBack           // Backspace - give up the open challenge
	ActionRestart        // R - restart after victory, back to the mode menu
	ActionQuit           // Q, Ctrl+C - exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionOption1:
		return "Option1"
	case ActionOption2:
		return "Option2"
	case ActionOption3:
		return "Option3"
	case ActionOption4:
		return "Option4"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// OptionIndex maps an option action to a zero-based choice index.
// Returns -1 for non-option actions.
func (a Action) OptionIndex() int {
	switch a {
	case ActionOption1:
		return 0
	case ActionOption2:
		return 1
	case ActionOption3:
		return 2
	case ActionOption4:
		return 3
	default:
		return -1
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Option returns the first option action set in this frame as an index, or -1.
func (f InputFrame) Option() int {
	for _, a := range []Action{ActionOption1, ActionOption2, ActionOption3, ActionOption4} {
		if f.Has(a) {
			return a.OptionIndex()
		}
	}
	return -1
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
