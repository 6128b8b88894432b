package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeyQuit

	KeyTab // Tab is a special keybinding for cycling the focus ring.

	KeySearch   // Key for opening the search bar
	KeyHelp     // Key for showing the help screen
	KeyControls // Key for opening the playback controls popup
	KeyQueue    // Key for adding the selected track to the queue
	KeyEsc      // Key for closing overlays
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
//
// Ctrl+P and Ctrl+N mirror Up and Down everywhere a list is navigable.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"ctrl+p": KeyUp,
	"down":   KeyDown,
	"ctrl+n": KeyDown,
	"enter":  KeyEnter,
	"q":      KeyQuit,
	"tab":    KeyTab,
	"s":      KeySearch,
	"?":      KeyHelp,
	" ":      KeyControls,
	"+":      KeyQueue,
	"esc":    KeyEsc,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑/C-p", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓/C-n", "down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "play"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle panes"),
	),
	KeySearch: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "search"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyControls: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "controls"),
	),
	KeyQueue: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "queue"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}
