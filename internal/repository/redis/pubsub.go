package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	EventDraftChanged = "draft_changed"
	EventDraftCleared = "draft_cleared"
)

// DraftEvent announces that a session's persisted slot was written or
// cleared. Origin identifies the publishing gateway instance so subscribers
// can ignore their own writes; WriteID identifies the individual write.
type DraftEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Origin    string `json:"origin"`
	WriteID   string `json:"write_id"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}

type DraftPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewDraftPubSub(rdb *redis.Client) *DraftPubSub {
	return &DraftPubSub{
		rdb:     rdb,
		channel: ChannelDraftsChanged(),
	}
}

func (p *DraftPubSub) Publish(ctx context.Context, ev DraftEvent) error {
	if ev.TsUnixMs == 0 {
		ev.TsUnixMs = time.Now().UnixMilli()
	}

	b, _ := json.Marshal(ev)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe blocks until ctx is done, invoking handler for every well-formed
// event on the drafts channel.
func (p *DraftPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, ev DraftEvent)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev DraftEvent
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.SessionID != "" {
				handler(ctx, ev)
			}
		}
	}
}
