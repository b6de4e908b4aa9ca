// Package events carries interaction events out of the rendering core.
// The renderer and table components never interpret these events; they
// only emit them so the hosting application can react (log usage, treat
// a suggested-action payload as a new question, and so on).
package events

// Kind identifies an outbound interaction event.
type Kind string

const (
	// KindTableCopy fires after a table is serialized to the clipboard.
	KindTableCopy Kind = "table_copy"

	// KindTableExportCSV fires after a table is exported to a CSV file.
	KindTableExportCSV Kind = "table_export_csv"

	// KindSuggestedAction fires when a suggested follow-up control is
	// activated. The payload is opaque to the emitter.
	KindSuggestedAction Kind = "suggested_action_clicked"
)

// Event is one outbound interaction event.
type Event struct {
	Kind Kind

	// TableID correlates table_copy / table_export_csv events with the
	// table instance that produced them. Empty for action events.
	TableID string

	// Label and Payload are set for suggested_action_clicked events.
	Label   string
	Payload string

	// Path is set for table_export_csv events and holds the written
	// file's location.
	Path string
}

// Bus is an explicitly constructed event channel passed down through the
// component tree. Emit never blocks: rendering must stay responsive even
// when nobody is draining the bus, so events are dropped once the buffer
// fills rather than stalling the render path.
type Bus struct {
	ch chan Event
}

// NewBus creates a bus buffering up to size events. A size below 1 is
// clamped to 1.
func NewBus(size int) *Bus {
	if size < 1 {
		size = 1
	}
	return &Bus{ch: make(chan Event, size)}
}

// Emit publishes an event without blocking. It reports whether the event
// was accepted; a nil bus accepts nothing, which lets components treat
// the bus as optional.
func (b *Bus) Emit(e Event) bool {
	if b == nil {
		return false
	}
	select {
	case b.ch <- e:
		return true
	default:
		return false
	}
}

// Events exposes the receive side of the bus for the hosting application.
func (b *Bus) Events() <-chan Event {
	return b.ch
}

// Drain returns all currently buffered events without blocking. Useful
// for hosts that poll between render frames.
func (b *Bus) Drain() []Event {
	if b == nil {
		return nil
	}
	var out []Event
	for {
		select {
		case e := <-b.ch:
			out = append(out, e)
		default:
			return out
		}
	}
}
