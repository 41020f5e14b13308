package keyboard

// Event is a keydown as delivered by a host: the browser-style key value,
// the physical code and modifier state.
type Event struct {
	Key   string `json:"key"`
	Code  string `json:"code"`
	Shift bool   `json:"shiftKey"`
	Ctrl  bool   `json:"ctrlKey"`
	Alt   bool   `json:"altKey"`
	Meta  bool   `json:"metaKey"`

	prevented bool
}

// PreventDefault marks the event as consumed so the host skips its default handling.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}
