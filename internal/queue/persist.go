package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/topic"
)

// snapshotVersion is the persisted payload version.
const snapshotVersion = 1

// snapshot is the serialized form of the full collection.
type snapshot struct {
	Version int           `json:"version"`
	Topics  []topic.Topic `json:"topics"`
}

// load reads the slot once at startup. Absent slot: empty queue.
// Unreadable payload: empty queue plus a corrupt-state warning,
// never a failure. Only a storage error propagates.
func (s *Store) load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, SlotKey)
	if err != nil {
		return errors.NewInternal(err)
	}
	if !ok {
		s.topics = nil
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.corruptWarning = errors.NewCorruptState(err)
		slog.Warn("persisted queue unreadable, starting empty",
			slog.String("slot", SlotKey),
			slog.String("error", err.Error()))
		s.topics = nil
		return nil
	}

	topics := snap.Topics
	for i := range topics {
		normalizeLoaded(&topics[i])
	}
	sortTopics(topics)
	s.topics = topics
	return nil
}

// normalizeLoaded repairs records persisted by older shapes: a
// missing or unknown status defaults to scheduled (generated when a
// draft is present), a missing length class defaults to medium.
func normalizeLoaded(t *topic.Topic) {
	if !t.Status.Valid() {
		if t.HasDraft() {
			t.Status = topic.StatusGenerated
		} else {
			t.Status = topic.StatusScheduled
		}
	}
	if !t.Length.Valid() {
		t.Length = topic.LengthMedium
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		t.UpdatedAt = t.CreatedAt
	}
}

// save serializes the given collection and overwrites the slot whole.
// Called with the lock held, after the mutation is fully applied to
// the candidate slice and before it is committed to s.topics.
func (s *Store) save(ctx context.Context, topics []topic.Topic) error {
	raw, err := json.Marshal(snapshot{Version: snapshotVersion, Topics: topics})
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := s.kv.Set(ctx, SlotKey, raw); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
