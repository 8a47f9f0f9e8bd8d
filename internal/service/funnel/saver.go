package funnel

import (
	"sync"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
)

// saver coalesces rapid draft mutations into one persisted write per quiet
// window. Each Cancel bumps the session's generation counter, so a timer
// that fires after a reset or confirm finds a stale generation and writes
// nothing; cleared state is never resurrected by a queued save.
type saver struct {
	mu      sync.Mutex
	delay   time.Duration
	persist func(sessionID string, d domain.Draft)
	pending map[string]*pendingWrite
}

type pendingWrite struct {
	gen   uint64
	draft domain.Draft
	timer *time.Timer
}

func newSaver(delay time.Duration, persist func(sessionID string, d domain.Draft)) *saver {
	return &saver{
		delay:   delay,
		persist: persist,
		pending: make(map[string]*pendingWrite),
	}
}

// Schedule records the latest draft for the session and (re)arms the quiet
// timer. Only the most recent draft at fire time is written.
func (w *saver) Schedule(sessionID string, d domain.Draft) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.pending[sessionID]
	if !ok {
		p = &pendingWrite{}
		w.pending[sessionID] = p
	}
	p.draft = d
	gen := p.gen

	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(w.delay, func() {
		w.fire(sessionID, gen)
	})
}

func (w *saver) fire(sessionID string, gen uint64) {
	w.mu.Lock()
	p, ok := w.pending[sessionID]
	if !ok || p.gen != gen {
		w.mu.Unlock()
		return
	}
	d := p.draft
	delete(w.pending, sessionID)
	w.mu.Unlock()

	w.persist(sessionID, d)
}

// Cancel drops any pending write for the session. Used by reset/confirm,
// which persist (or clear) synchronously themselves.
func (w *saver) Cancel(sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.pending[sessionID]
	if !ok {
		return
	}
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
	}
	delete(w.pending, sessionID)
}
