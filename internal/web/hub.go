package web

import (
	"sync"

	"citygrowth/internal/sims/city"
)

// Frame is pushed to every websocket client after a run.
type Frame struct {
	Session   string       `json:"session"`
	Title     string       `json:"title"`
	Heights   [][]int      `json:"heights"`
	Metrics   city.Metrics `json:"metrics"`
	Completed int          `json:"completed"`
	Exhausted bool         `json:"exhausted"`
	StoppedAt *int         `json:"stopped_at,omitempty"`
}

func newFrame(id string, res city.RunResult) Frame {
	return Frame{
		Session:   id,
		Title:     res.Title,
		Heights:   res.Heights,
		Metrics:   res.Metrics,
		Completed: res.Completed,
		Exhausted: res.Exhausted,
		StoppedAt: res.StoppedAt,
	}
}

// hub fans frames out to websocket subscribers. Slow subscribers miss frames
// rather than stalling the run handler.
type hub struct {
	mu   sync.Mutex
	subs map[chan Frame]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan Frame]struct{})}
}

func (h *hub) subscribe() chan Frame {
	ch := make(chan Frame, 4)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *hub) publish(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- f:
		default:
		}
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
