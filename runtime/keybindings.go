package runtime

// KeyBinding declares that pressing Key should emit Event (with optional
// Data) on the component that registered it, subject to an optional
// Condition gate — grounded on pkg/bubbly/key_bindings.go's KeyBinding,
// kept with the same field shape and the same "Bubbletea tea.KeyMsg.
// String() convention" key format ("ctrl+c", "up", "space", ...), since
// this port's host event source is the same terminal key stream.
type KeyBinding struct {
	Key         string
	Event       string
	Description string
	Data        any
	Condition   func() bool
}

// OnKeyBinding registers an always-active key binding on the instance
// currently running its Setup function, mirroring the On* lifecycle-hook
// helpers in context.go. A no-op outside Setup.
func OnKeyBinding(key, event, description string) {
	OnKeyBindingWithData(key, event, description, nil)
}

// OnKeyBindingWithData is OnKeyBinding plus a data payload forwarded to
// the emitted event, for the same key bound to different events/data
// across sibling bindings (pkg/bubbly/key_bindings.go's "Data" field
// doc example: WithKeyBinding("1", ...).Data = 0, ("2", ...).Data = 1).
func OnKeyBindingWithData(key, event, description string, data any) {
	OnConditionalKeyBinding(KeyBinding{Key: key, Event: event, Description: description, Data: data})
}

// OnConditionalKeyBinding registers kb as-is, Condition included, for
// mode-based input (e.g. navigation vs. typing) where the same key
// dispatches to different events depending on component state.
func OnConditionalKeyBinding(kb KeyBinding) {
	if h := current(); h != nil {
		h.bindKey(kb)
	}
}

// HandleKey matches key against inst's registered bindings in
// registration order, emitting the first one whose Condition (if any)
// passes. Returns the matched event name and whether any binding fired,
// so a host event loop can special-case names like "quit" itself —
// keybindings.go has no notion of a host program to quit.
func (inst *Instance[N, E]) HandleKey(key string) (event string, matched bool) {
	for _, kb := range inst.keyBindings {
		if kb.Key != key {
			continue
		}
		if kb.Condition != nil && !kb.Condition() {
			continue
		}
		if kb.Data != nil {
			inst.emitEvent(kb.Event, kb.Data)
		} else {
			inst.emitEvent(kb.Event)
		}
		return kb.Event, true
	}
	return "", false
}

func (inst *Instance[N, E]) bindKey(kb KeyBinding) {
	inst.keyBindings = append(inst.keyBindings, kb)
}
