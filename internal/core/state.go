package core

// State is the position of a run in the pipeline.
type State int

const (
	StateIdle State = iota
	StateOutlineRequested
	StateOutlinePending
	StateOutlineReady
	StatePerItemGeneration
	StateAllItemsReady
	StateSaving
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StateOutlineRequested:  "outline-requested",
	StateOutlinePending:    "outline-pending",
	StateOutlineReady:      "outline-ready",
	StatePerItemGeneration: "per-item-generation",
	StateAllItemsReady:     "all-items-ready",
	StateSaving:            "saving",
	StateDone:              "done",
	StateFailed:            "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
