package converter

const (
	EventTypeStateChanged = "converter.state_changed"
	EventTypeLoadFailed   = "converter.load_failed"
)

// StateChanged is published after every state change with the new view.
type StateChanged struct {
	View View
}

func (StateChanged) Type() string { return EventTypeStateChanged }

// LoadFailed is published once when the catalog load fails.
type LoadFailed struct {
	Err error
}

func (LoadFailed) Type() string { return EventTypeLoadFailed }
