package mapper

import (
	"github.com/seqsense/scaffoldmapper/scaffold"
)

// history keeps the scaffold states before the last maxHistory operations.
type history struct {
	states     []scaffold.State
	maxHistory int
}

func newHistory(n int) *history {
	if n < 0 {
		n = 0
	}
	return &history{maxHistory: n}
}

func (h *history) push(s scaffold.State) {
	if h.maxHistory == 0 {
		return
	}
	h.states = append(h.states, s)
	if len(h.states) > h.maxHistory {
		h.states = h.states[1:]
	}
}

func (h *history) undo() (scaffold.State, bool) {
	n := len(h.states)
	if n == 0 {
		return scaffold.State{}, false
	}
	s := h.states[n-1]
	h.states = h.states[:n-1]
	return s, true
}

func (h *history) clear() {
	h.states = nil
}
