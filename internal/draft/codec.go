package draft

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
)

// Encode renders the draft as the persisted JSON blob.
func Encode(d domain.Draft) ([]byte, error) {
	const op = "draft.Encode"

	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return b, nil
}

// Decode parses a persisted blob. A blob with a stale schema version is not
// migrated: only its vehicle type survives into a fresh draft, and reseeded
// reports that the caller should rewrite the slot so the same invalid blob
// is not parsed again on every load.
func Decode(raw []byte, now time.Time) (d domain.Draft, reseeded bool, err error) {
	const op = "draft.Decode"

	var parsed domain.Draft
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return domain.Draft{}, false, fmt.Errorf("%s:%w", op, err)
	}

	if parsed.SchemaVersion != domain.SchemaVersion {
		return Seeded(parsed.VehicleType, now), true, nil
	}

	Normalize(&parsed)
	if parsed.CreatedAt.IsZero() {
		parsed.CreatedAt = now
	}
	if parsed.UpdatedAt.IsZero() {
		parsed.UpdatedAt = now
	}

	return parsed, false, nil
}
