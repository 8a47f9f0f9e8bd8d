package funnel

import (
	"context"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
	"github.com/precisionto/funnel-go/internal/draft"
	redisrepo "github.com/precisionto/funnel-go/internal/repository/redis"
)

// RunSync consumes the drafts channel and reconciles in-memory sessions
// with external slot writes (another instance, or another tab routed
// elsewhere). It is the only path that replaces session state without going
// through the mutators. Blocks until ctx is done.
func (s *Service) RunSync(ctx context.Context) error {
	return s.bus.Subscribe(ctx, s.applyExternal)
}

func (s *Service) applyExternal(ctx context.Context, ev redisrepo.DraftEvent) {
	// Our own writes echo back on the channel; never re-apply them.
	if ev.Origin == s.origin {
		return
	}

	sess, ok := s.peekSession(ev.SessionID)
	if !ok {
		// Nothing local to reconcile; the slot is loaded on first access.
		return
	}

	sess.mu.Lock()
	if ev.TsUnixMs <= sess.lastWriteMs {
		// Older than our last self-write: a late or reordered event.
		sess.mu.Unlock()
		return
	}
	sess.mu.Unlock()

	var (
		next  domain.Draft
		event Event
	)

	switch ev.Type {
	case redisrepo.EventDraftCleared:
		next = draft.New(time.Now())
		event = Event{Type: "cleared"}
	case redisrepo.EventDraftChanged:
		d, found, err := s.slot.Load(ctx, ev.SessionID)
		if err != nil {
			s.logger.Warn("sync: slot load failed", "session_id", ev.SessionID, "error", err)
			return
		}
		if !found {
			next = draft.New(time.Now())
		} else {
			next = d
		}
		event = Event{Type: "changed"}
	default:
		return
	}

	// Last writer wins; no merge. Re-check staleness under the lock: a
	// local write may have landed while the slot was loading, and adopting
	// the older event would move lastWriteMs backward.
	sess.mu.Lock()
	if ev.TsUnixMs <= sess.lastWriteMs {
		sess.mu.Unlock()
		return
	}
	sess.draft = next
	sess.lastWriteMs = ev.TsUnixMs
	sess.mu.Unlock()

	s.notify(sess, event)
}
