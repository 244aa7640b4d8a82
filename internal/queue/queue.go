// Package queue owns the ordered collection of topics. All mutation
// goes through the Store, which re-sorts and persists the full
// collection after every change. Persistence is a single slot in an
// injected key-value store; the Store is the only writer.
package queue

import (
	"context"
	"crypto/rand"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/storage"
	"github.com/hpungsan/planq/internal/topic"
)

// SlotKey is the single storage slot the queue persists itself under.
const SlotKey = "queue"

// Store is the exclusive owner of the topic collection. Mutations are
// serialized; concurrent generation results fold back through Mutate
// one at a time.
type Store struct {
	kv        storage.KV
	fallbacks topic.Fallbacks

	// Now is the clock used for ids, timestamps, and the "today"
	// view. Overridable in tests.
	Now func() time.Time

	mu             sync.Mutex
	topics         []topic.Topic // always sorted by (ScheduledFor, CreatedAt)
	corruptWarning *errors.PlanqError
}

// Open loads the persisted queue from kv exactly once and returns the
// store. An absent slot yields an empty queue; an unreadable slot
// yields an empty queue and a recoverable corrupt-state warning
// available via CorruptWarning. Open never fails on bad payloads,
// only on storage errors.
func Open(ctx context.Context, kv storage.KV, fb topic.Fallbacks) (*Store, error) {
	s := &Store{
		kv:        kv,
		fallbacks: fb,
		Now:       time.Now,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// CorruptWarning returns the recoverable warning raised if the
// persisted queue was unreadable at load, or nil.
func (s *Store) CorruptWarning() *errors.PlanqError {
	return s.corruptWarning
}

// Add validates raw input, assigns a fresh id and timestamps, inserts
// the topic, re-sorts, and persists. Returns the created topic.
func (s *Store) Add(ctx context.Context, input topic.Input) (*topic.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()

	t, err := topic.New(input, s.fallbacks, now)
	if err != nil {
		return nil, err
	}

	id, err := newID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now

	next := append(slices.Clone(s.topics), *t)
	sortTopics(next)

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	s.topics = next

	out := *t
	return &out, nil
}

// Mutate applies transform to a copy of the topic with the given id,
// forces UpdatedAt to now, replaces the record, re-sorts, and
// persists. The id and creation time are immutable; transforms cannot
// change them. Fails with NOT_FOUND if the id is absent, in which
// case nothing is mutated or persisted.
func (s *Store) Mutate(ctx context.Context, id string, transform func(*topic.Topic)) (*topic.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateLocked(ctx, id, transform)
}

func (s *Store) mutateLocked(ctx context.Context, id string, transform func(*topic.Topic)) (*topic.Topic, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFound(id)
	}

	t := s.topics[idx]
	transform(&t)
	t.ID = id
	t.CreatedAt = s.topics[idx].CreatedAt
	t.UpdatedAt = s.Now()

	next := slices.Clone(s.topics)
	next[idx] = t
	sortTopics(next)

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	s.topics = next

	out := t
	return &out, nil
}

// Remove deletes the topic if present and persists. Absence is not an
// error: the second call reports removed=false without touching
// storage. The returned flag doubles as the signal for the caller to
// clear any selection pointing at the id.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.topics), idx, idx+1)
	sortTopics(next)

	if err := s.save(ctx, next); err != nil {
		return false, err
	}
	s.topics = next
	return true, nil
}

// SetStatus sets the status and leaves the draft untouched. Any of
// the three statuses is accepted; the exposed CLI/MCP surface only
// offers the generated/posted toggle, so this is the escape hatch.
func (s *Store) SetStatus(ctx context.Context, id string, status topic.Status) (*topic.Topic, error) {
	if !status.Valid() {
		return nil, errors.NewInvalidRequest("status must be one of: scheduled, generated, posted")
	}
	return s.Mutate(ctx, id, func(t *topic.Topic) {
		t.Status = status
	})
}

// TogglePosted flips a topic between generated and posted. A topic
// that has never been generated cannot be posted.
func (s *Store) TogglePosted(ctx context.Context, id string, posted bool) (*topic.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFound(id)
	}
	if s.topics[idx].Status == topic.StatusScheduled {
		return nil, errors.NewInvalidRequest("topic has no draft yet; generate one before posting")
	}

	status := topic.StatusGenerated
	if posted {
		status = topic.StatusPosted
	}
	return s.mutateLocked(ctx, id, func(t *topic.Topic) {
		t.Status = status
	})
}

// Get returns a copy of the topic with the given id.
func (s *Store) Get(id string) (*topic.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFound(id)
	}
	t := s.topics[idx]
	return &t, nil
}

// All returns a copy of the full collection in queue order.
func (s *Store) All() []topic.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.topics)
}

// Len returns the number of topics in the queue.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.topics)
}

// indexOf returns the position of id in the collection, or -1.
// Caller holds the lock.
func (s *Store) indexOf(id string) int {
	for i := range s.topics {
		if s.topics[i].ID == id {
			return i
		}
	}
	return -1
}

// sortTopics applies the queue ordering: (ScheduledFor, CreatedAt)
// ascending. The stable sort keeps insertion order on ties.
func sortTopics(topics []topic.Topic) {
	sort.SliceStable(topics, func(i, j int) bool {
		return topic.Less(&topics[i], &topics[j])
	})
}

// newID generates a new ULID.
func newID(now time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
