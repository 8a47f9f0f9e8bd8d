package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/precisionto/funnel-go/internal/domain"
	"github.com/precisionto/funnel-go/internal/draft"
)

// Drafts older than this are abandoned funnels; let Redis reap them.
const draftTTL = 7 * 24 * time.Hour

// DraftSlot is the shared persisted slot: one JSON blob per session key.
// It is the only resource shared across gateway instances and tabs.
type DraftSlot struct {
	rdb *redis.Client
}

func NewDraftSlot(rdb *redis.Client) *DraftSlot {
	return &DraftSlot{rdb: rdb}
}

// Load reads the slot for a session. Absent or unparsable blobs report
// found=false. A blob with a stale schema version comes back as a fresh
// draft seeded with the old vehicle type, and the slot is rewritten right
// away so the same invalid blob is not hit on every load.
func (s *DraftSlot) Load(ctx context.Context, sessionID string) (domain.Draft, bool, error) {
	const op = "redisrepo.DraftSlot.Load"

	raw, err := s.rdb.Get(ctx, KeyDraft(sessionID)).Bytes()
	if err == redis.Nil {
		return domain.Draft{}, false, nil
	}
	if err != nil {
		return domain.Draft{}, false, fmt.Errorf("%s:%w", op, err)
	}

	d, reseeded, err := draft.Decode(raw, time.Now())
	if err != nil {
		// Corrupt blob: treat as absent, a fresh draft will overwrite it.
		return domain.Draft{}, false, nil
	}

	if reseeded {
		if err := s.Save(ctx, sessionID, d); err != nil {
			return d, true, fmt.Errorf("%s:%w", op, err)
		}
	}

	return d, true, nil
}

func (s *DraftSlot) Save(ctx context.Context, sessionID string, d domain.Draft) error {
	const op = "redisrepo.DraftSlot.Save"

	b, err := draft.Encode(d)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	if err := s.rdb.Set(ctx, KeyDraft(sessionID), b, draftTTL).Err(); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (s *DraftSlot) Clear(ctx context.Context, sessionID string) error {
	const op = "redisrepo.DraftSlot.Clear"

	if err := s.rdb.Del(ctx, KeyDraft(sessionID)).Err(); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
