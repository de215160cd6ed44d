package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionJump           // Space, W, Up - jump
	ActionThrow          // F, X, Ctrl - throw a brick
	ActionConfirm        // Enter - confirm (replay after winning)
	ActionRestart        // R key - restart the session
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionThrow:
		return "Throw"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for the player during one simulation tick.
// It contains all actions that were triggered during this frame plus the
// held horizontal axis.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Axis is the held horizontal axis in [-1, 1]. Platforms that only see
	// key presses (terminals) synthesize it from Left/Right.
	Axis float64
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

// Clear resets all actions and the axis for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Axis = 0
}

// Intent converts the frame into the device-independent intent consumed by
// the simulation. Left/Right actions override a zero axis.
func (f InputFrame) Intent() Intent {
	h := f.Axis
	if h == 0 {
		if f.Has(ActionLeft) {
			h--
		}
		if f.Has(ActionRight) {
			h++
		}
	}
	return Intent{
		Horizontal: ClampF(h, -1, 1),
		Jump:       f.Has(ActionJump),
		Throw:      f.Has(ActionThrow),
		Confirm:    f.Has(ActionConfirm),
	}
}

// Intent is the normalized per-tick input: a horizontal axis in [-1, 1] and
// one-shot edge signals.
type Intent struct {
	Horizontal float64
	Jump       bool
	Throw      bool
	Confirm    bool
}

// Normalized clamps the axis into [-1, 1]; NaN becomes 0.
func (in Intent) Normalized() Intent {
	if in.Horizontal != in.Horizontal {
		in.Horizontal = 0
	}
	in.Horizontal = ClampF(in.Horizontal, -1, 1)
	return in
}
