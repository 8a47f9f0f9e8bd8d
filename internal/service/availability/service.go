// Package availability turns a selected calendar date into a list of
// bookable slots. Selecting a new date cancels the in-flight fetch for the
// old one; a response for a superseded date is dropped silently so stale
// slots never flicker in.
package availability

import (
	"context"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
	redisrepo "github.com/precisionto/funnel-go/internal/repository/redis"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SlotFetcher is the upstream availability query.
type SlotFetcher interface {
	FetchSlots(ctx context.Context, date string) ([]domain.Slot, error)
}

type Config struct {
	CacheTTL time.Duration
}

type Service struct {
	fetcher SlotFetcher
	cache   *redisrepo.Cache // optional
	logger  *slog.Logger
	cfg     Config

	mu       sync.Mutex
	sessions map[string]*dateState
}

type dateState struct {
	date    string
	loading bool
	slots   []domain.Slot
	errMsg  string
	cancel  context.CancelFunc
}

// State is the per-session availability view: either loading, a slot list
// (possibly empty, which is a valid outcome), or an error message to retry from.
type State struct {
	Date    string        `json:"date"`
	Loading bool          `json:"loading"`
	Slots   []domain.Slot `json:"slots"`
	Error   string        `json:"error,omitempty"`
}

func New(fetcher SlotFetcher, cache *redisrepo.Cache, logger *slog.Logger, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Second
	}

	return &Service{
		fetcher:  fetcher,
		cache:    cache,
		logger:   logger,
		cfg:      cfg,
		sessions: make(map[string]*dateState),
	}
}

// SelectDate starts an asynchronous slot fetch for the date, superseding
// any fetch still in flight for this session.
func (s *Service) SelectDate(sessionID, date string) (State, error) {
	if !dateRe.MatchString(date) {
		return State{}, ErrInvalidDate
	}

	s.mu.Lock()
	if prev, ok := s.sessions[sessionID]; ok && prev.cancel != nil {
		prev.cancel()
	}

	// Detached from the request context: the fetch outlives the HTTP call
	// that triggered it, up to its own timeout.
	fctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	st := &dateState{date: date, loading: true, cancel: cancel}
	s.sessions[sessionID] = st
	s.mu.Unlock()

	go s.fetch(fctx, sessionID, date)

	return s.GetState(sessionID), nil
}

func (s *Service) fetch(ctx context.Context, sessionID, date string) {
	defer func() {
		s.mu.Lock()
		if st, ok := s.sessions[sessionID]; ok && st.date == date && st.cancel != nil {
			st.cancel()
			st.cancel = nil
		}
		s.mu.Unlock()
	}()

	slots, err := s.load(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok || st.date != date {
		// Superseded by a newer date; drop silently.
		return
	}

	st.loading = false
	if err != nil {
		if ctx.Err() == context.Canceled {
			return
		}
		s.logger.Warn("availability fetch failed", "date", date, "error", err)
		st.errMsg = FetchFailedMessage
		st.slots = nil
		return
	}

	st.slots = slots
	st.errMsg = ""
}

func (s *Service) load(ctx context.Context, date string) ([]domain.Slot, error) {
	if s.cache == nil {
		return s.fetcher.FetchSlots(ctx, date)
	}

	return redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyAvailability(date), s.cfg.CacheTTL,
		func(ctx context.Context) ([]domain.Slot, error) {
			return s.fetcher.FetchSlots(ctx, date)
		})
}

// GetState returns the session's current availability view.
func (s *Service) GetState(sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return State{Slots: []domain.Slot{}}
	}

	out := State{
		Date:    st.date,
		Loading: st.loading,
		Error:   st.errMsg,
		Slots:   make([]domain.Slot, len(st.slots)),
	}
	copy(out.Slots, st.slots)

	return out
}

// Slot resolves a slot by its label within the session's currently loaded
// date. Booked slots cannot be chosen.
func (s *Service) Slot(sessionID, date, label string) (domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok || st.date != date || st.loading {
		return domain.Slot{}, ErrSlotNotFound
	}

	for _, slot := range st.slots {
		if slot.Label == label {
			if slot.Booked {
				return domain.Slot{}, ErrSlotUnavailable
			}
			return slot, nil
		}
	}

	return domain.Slot{}, ErrSlotNotFound
}

// Drop forgets the session's availability state, cancelling any in-flight
// fetch. Called on teardown.
func (s *Service) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[sessionID]; ok {
		if st.cancel != nil {
			st.cancel()
		}
		delete(s.sessions, sessionID)
	}
}
