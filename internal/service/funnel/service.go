// Package funnel is the single source of truth for in-progress booking
// drafts. All mutations funnel through Service; everything else reads
// snapshots or derived values.
package funnel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/precisionto/funnel-go/internal/domain"
	"github.com/precisionto/funnel-go/internal/draft"
	redisrepo "github.com/precisionto/funnel-go/internal/repository/redis"
	"github.com/precisionto/funnel-go/internal/wizard"
)

// Debounce window for persisted writes: rapid +/− clicks coalesce into one
// slot write.
const saveDebounce = 120 * time.Millisecond

// SlotStore is the persisted draft slot.
type SlotStore interface {
	Load(ctx context.Context, sessionID string) (domain.Draft, bool, error)
	Save(ctx context.Context, sessionID string, d domain.Draft) error
	Clear(ctx context.Context, sessionID string) error
}

// EventBus fans slot changes out to other gateway instances and feeds the
// synchronizer.
type EventBus interface {
	Publish(ctx context.Context, ev redisrepo.DraftEvent) error
	Subscribe(ctx context.Context, handler func(ctx context.Context, ev redisrepo.DraftEvent)) error
}

// Event notifies SSE watchers that the session's state changed.
type Event struct {
	Type string `json:"type"`
}

type session struct {
	mu            sync.Mutex
	draft         domain.Draft
	step          wizard.Step
	lastConfirmed *domain.Booking
	lastWriteMs   int64
	submitting    bool
	watchers      map[chan Event]struct{}
}

// State is a consistent read of one session.
type State struct {
	SessionID            string          `json:"sessionId"`
	Draft                domain.Draft    `json:"draft"`
	TotalPrice           float64         `json:"totalPrice"`
	TotalDurationMinutes int             `json:"totalDurationMinutes"`
	Step                 wizard.Step     `json:"step"`
	LastConfirmed        *domain.Booking `json:"lastConfirmed,omitempty"`
}

type Service struct {
	slot   SlotStore
	bus    EventBus
	logger *slog.Logger
	origin string

	mu       sync.Mutex
	sessions map[string]*session

	saver *saver
}

func New(slot SlotStore, bus EventBus, logger *slog.Logger) *Service {
	s := &Service{
		slot:     slot,
		bus:      bus,
		logger:   logger,
		origin:   uuid.New().String(),
		sessions: make(map[string]*session),
	}
	s.saver = newSaver(saveDebounce, s.persistAndAnnounce)
	return s
}

// Origin identifies this gateway instance on the drafts channel.
func (s *Service) Origin() string {
	return s.origin
}

// CreateSession starts a fresh funnel session.
func (s *Service) CreateSession(ctx context.Context) string {
	id := uuid.New().String()

	sess := &session{
		draft:    draft.New(time.Now()),
		step:     wizard.First(),
		watchers: make(map[chan Event]struct{}),
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return id
}

// getSession returns the in-memory session, rehydrating it from the slot
// when this instance has not seen the id before (another instance, or a
// restart, may have written it).
func (s *Service) getSession(ctx context.Context, id string) *session {
	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		s.mu.Unlock()
		return sess
	}
	s.mu.Unlock()

	d, found, err := s.slot.Load(ctx, id)
	if err != nil {
		s.logger.Warn("draft slot load failed", "session_id", id, "error", err)
		found = false
	}
	if !found {
		d = draft.New(time.Now())
	}

	sess := &session{
		draft:    d,
		step:     wizard.First(),
		watchers: make(map[chan Event]struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing
	}
	s.sessions[id] = sess
	return sess
}

// peekSession returns the session only if it is already in memory.
func (s *Service) peekSession(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Service) snapshotState(id string, sess *session) State {
	return State{
		SessionID:            id,
		Draft:                sess.draft,
		TotalPrice:           draft.TotalPrice(sess.draft),
		TotalDurationMinutes: draft.TotalDuration(sess.draft),
		Step:                 sess.step,
		LastConfirmed:        sess.lastConfirmed,
	}
}

// GetState returns a consistent snapshot of the session.
func (s *Service) GetState(ctx context.Context, id string) State {
	sess := s.getSession(ctx, id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshotState(id, sess)
}

// Snapshot returns the current draft by value.
func (s *Service) Snapshot(ctx context.Context, id string) domain.Draft {
	sess := s.getSession(ctx, id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.draft
}

// mutate applies a pure transition under the session lock, schedules a
// debounced persisted write, and wakes watchers.
func (s *Service) mutate(ctx context.Context, id string, fn func(domain.Draft) domain.Draft) State {
	sess := s.getSession(ctx, id)

	sess.mu.Lock()
	sess.draft = fn(sess.draft)
	sess.lastWriteMs = time.Now().UnixMilli()
	st := s.snapshotState(id, sess)
	// Schedule while still holding the session lock: a reset/confirm that
	// interleaves here must observe the queued write and cancel it.
	s.saver.Schedule(id, st.Draft)
	sess.mu.Unlock()

	s.notify(sess, Event{Type: "changed"})

	return st
}

func (s *Service) SetVehicleType(ctx context.Context, id, vehicleType string) State {
	return s.mutate(ctx, id, func(d domain.Draft) domain.Draft {
		return draft.SetVehicleType(d, vehicleType)
	})
}

func (s *Service) ToggleService(ctx context.Context, id string, item domain.LineItem) State {
	return s.mutate(ctx, id, func(d domain.Draft) domain.Draft {
		return draft.ToggleService(d, item)
	})
}

func (s *Service) ToggleAddon(ctx context.Context, id string, item domain.LineItem) State {
	return s.mutate(ctx, id, func(d domain.Draft) domain.Draft {
		return draft.ToggleAddon(d, item)
	})
}

func (s *Service) AdjustService(ctx context.Context, id, itemID string, delta int) State {
	return s.mutate(ctx, id, func(d domain.Draft) domain.Draft {
		return draft.AdjustService(d, itemID, delta)
	})
}

func (s *Service) AdjustAddon(ctx context.Context, id, itemID string, delta int) State {
	return s.mutate(ctx, id, func(d domain.Draft) domain.Draft {
		return draft.AdjustAddon(d, itemID, delta)
	})
}

func (s *Service) SetCustomerInfo(ctx context.Context, id string, info domain.CustomerInfo) State {
	return s.mutate(ctx, id, func(d domain.Draft) domain.Draft {
		return draft.SetCustomerInfo(d, info)
	})
}

func (s *Service) SetVehicleInfo(ctx context.Context, id string, info domain.VehicleInfo) State {
	return s.mutate(ctx, id, func(d domain.Draft) domain.Draft {
		return draft.SetVehicleInfo(d, info)
	})
}

func (s *Service) SetSchedule(ctx context.Context, id, date, timeLabel string, startAt time.Time) State {
	return s.mutate(ctx, id, func(d domain.Draft) domain.Draft {
		return draft.SetSchedule(d, date, timeLabel, startAt)
	})
}

// Reset replaces the session with a brand-new idle draft and rewrites the
// slot immediately, superseding any pending debounced save.
func (s *Service) Reset(ctx context.Context, id string) State {
	sess := s.getSession(ctx, id)

	sess.mu.Lock()
	s.saver.Cancel(id)
	sess.draft = draft.New(time.Now())
	sess.step = wizard.First()
	sess.lastConfirmed = nil
	sess.lastWriteMs = time.Now().UnixMilli()
	st := s.snapshotState(id, sess)
	sess.mu.Unlock()

	s.persistAndAnnounce(id, st.Draft)
	s.notify(sess, Event{Type: "reset"})

	return st
}

// Confirm snapshots the merged receipt, clears the persisted slot, and
// swaps in a fresh draft, atomically with respect to concurrent reads.
// The receipt lives in memory only; it is lost on restart by design.
func (s *Service) Confirm(ctx context.Context, id string, receipt domain.Booking) State {
	sess := s.getSession(ctx, id)

	sess.mu.Lock()
	s.saver.Cancel(id)
	sess.lastConfirmed = &receipt
	sess.draft = draft.New(time.Now())
	sess.step = wizard.First()
	sess.lastWriteMs = time.Now().UnixMilli()
	sess.submitting = false
	st := s.snapshotState(id, sess)
	sess.mu.Unlock()

	if err := s.slot.Clear(ctx, id); err != nil {
		s.logger.Warn("draft slot clear failed", "session_id", id, "error", err)
	}
	s.announce(ctx, redisrepo.EventDraftCleared, id)
	s.notify(sess, Event{Type: "confirmed"})

	return st
}

// Receipt returns the last confirmed booking for the session, or
// ErrNoBookingData when nothing has been confirmed since this instance
// started (receipts are memory-only).
func (s *Service) Receipt(ctx context.Context, id string) (domain.Booking, error) {
	sess := s.getSession(ctx, id)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.lastConfirmed == nil {
		return domain.Booking{}, ErrNoBookingData
	}
	return *sess.lastConfirmed, nil
}

// BeginSubmit marks a submission in flight; repeated triggers are rejected
// until EndSubmit.
func (s *Service) BeginSubmit(ctx context.Context, id string) error {
	sess := s.getSession(ctx, id)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.submitting {
		return ErrSubmissionInFlight
	}
	sess.submitting = true
	return nil
}

func (s *Service) EndSubmit(id string) {
	if sess, ok := s.peekSession(id); ok {
		sess.mu.Lock()
		sess.submitting = false
		sess.mu.Unlock()
	}
}

// Advance moves the wizard forward when the draft passes the next step's
// gate.
func (s *Service) Advance(ctx context.Context, id string) (State, error) {
	sess := s.getSession(ctx, id)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, err := wizard.Next(sess.step, sess.draft)
	if err != nil {
		return s.snapshotState(id, sess), err
	}
	sess.step = next

	return s.snapshotState(id, sess), nil
}

// Back steps backward; always allowed, never touches the draft.
func (s *Service) Back(ctx context.Context, id string) State {
	sess := s.getSession(ctx, id)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.step = wizard.Back(sess.step)
	return s.snapshotState(id, sess)
}

// Watch subscribes to change notifications for a session. The returned
// cancel must be called when the watcher goes away.
func (s *Service) Watch(ctx context.Context, id string) (<-chan Event, func()) {
	sess := s.getSession(ctx, id)

	ch := make(chan Event, 8)
	sess.mu.Lock()
	sess.watchers[ch] = struct{}{}
	sess.mu.Unlock()

	cancel := func() {
		sess.mu.Lock()
		delete(sess.watchers, ch)
		sess.mu.Unlock()
	}

	return ch, cancel
}

func (s *Service) notify(sess *session, ev Event) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	for ch := range sess.watchers {
		select {
		case ch <- ev:
		default: // slow watcher, drop
		}
	}
}

// persistAndAnnounce is the saver's sink: write the slot, then tell other
// instances. Persistence is an optimization: failures are logged, never
// raised.
func (s *Service) persistAndAnnounce(sessionID string, d domain.Draft) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.slot.Save(ctx, sessionID, d); err != nil {
		s.logger.Warn("draft slot save failed", "session_id", sessionID, "error", err)
		return
	}

	s.announce(ctx, redisrepo.EventDraftChanged, sessionID)
}

func (s *Service) announce(ctx context.Context, typ, sessionID string) {
	ev := redisrepo.DraftEvent{
		Type:      typ,
		SessionID: sessionID,
		Origin:    s.origin,
		WriteID:   uuid.New().String(),
		TsUnixMs:  time.Now().UnixMilli(),
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		s.logger.Warn("draft event publish failed", "session_id", sessionID, "error", err)
	}
}
