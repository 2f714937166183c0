package interaction

// EventType classifies a single key press.
type EventType int

const (
	EventChar EventType = iota
	EventQuit
	EventEnter
	EventBackspace
	EventTab
	EventSpace
	EventDigit
	// EventEscape covers ESC and the rest of an escape sequence such as an arrow key
	EventEscape
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventEnter:
		return "enter"
	case EventBackspace:
		return "backspace"
	case EventTab:
		return "tab"
	case EventSpace:
		return "space"
	case EventDigit:
		return "digit"
	case EventEscape:
		return "escape"
	default:
		return "char"
	}
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type EventType
}

// State of the interactive session
type State int

const (
	StateAwaitingKey State = iota
	StateQuit
)

const (
	keyCtrlC     = 3
	keyEOT       = 4
	keyBackspace = 8
	keyEscape    = 27
	keyDelete    = 127
)

// parseInput classifies a key. Whether a quit key actually quits depends on the session buffer.
func parseInput(r rune) KeyEvent {
	event := KeyEvent{Key: r, Type: EventChar}

	switch {
	case r == keyCtrlC || r == keyEOT || r == 'q' || r == 'Q':
		event.Type = EventQuit
	case r == '\r' || r == '\n':
		event.Type = EventEnter
	case r == keyBackspace || r == keyDelete:
		event.Type = EventBackspace
	case r == '\t':
		event.Type = EventTab
	case r == ' ':
		event.Type = EventSpace
	case r >= '0' && r <= '9':
		event.Type = EventDigit
	case r == keyEscape:
		event.Type = EventEscape
	}
	return event
}

// isControlQuit reports whether a quit key quits even with text typed.
func isControlQuit(r rune) bool {
	return r == keyCtrlC || r == keyEOT
}
