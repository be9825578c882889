package core

// EventKind identifies a progress notification emitted by a run.
type EventKind int

const (
	// EventOutlineReady carries the parsed outline.
	EventOutlineReady EventKind = iota + 1
	// EventItemReady carries the content generated for one item.
	EventItemReady
	// EventFinished is always the last event of a run.
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventOutlineReady:
		return "outline-ready"
	case EventItemReady:
		return "item-ready"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is one progress notification. Which fields are set depends on Kind.
type Event struct {
	Kind  EventKind
	RunID string

	// EventOutlineReady
	Outline []string

	// EventItemReady
	Index   int
	Total   int
	Item    string
	Content string

	// EventFinished
	Result  *RunResult
	Err     error
	Message string
}

// Observer receives events synchronously from the goroutine running the pipeline.
type Observer func(Event)

// relay forwards events from in to out, buffering without bound so that
// senders on in are never held up by a slow reader of out. out is closed once
// in is closed and everything buffered has been delivered.
func relay(in <-chan Event, out chan<- Event) {
	defer close(out)

	var pending []Event
	for in != nil || len(pending) > 0 {
		var send chan<- Event
		var next Event
		if len(pending) > 0 {
			send = out
			next = pending[0]
		}

		select {
		case ev, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, ev)
		case send <- next:
			pending = pending[1:]
		}
	}
}
