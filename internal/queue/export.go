package queue

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/topic"
)

// Export writes the full queue as JSONL, one topic per line, in queue
// order. Returns the number of lines written.
func (s *Store) Export(w io.Writer) (int, error) {
	topics := s.All()

	bw := bufio.NewWriter(w)
	for i := range topics {
		line, err := json.Marshal(&topics[i])
		if err != nil {
			return 0, errors.NewInternal(err)
		}
		if _, err := bw.Write(append(line, '\n')); err != nil {
			return 0, errors.NewInternal(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, errors.NewInternal(err)
	}
	return len(topics), nil
}

// ImportResult summarizes an Import run.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Import reads a JSONL snapshot and merges it into the queue. Lines
// that fail to parse, have empty topic text, or collide with an
// existing id are skipped; everything else is normalized the same way
// loaded records are, inserted, and persisted in one re-sort.
func (s *Store) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool, len(s.topics))
	for i := range s.topics {
		existing[s.topics[i].ID] = true
	}

	result := &ImportResult{}
	next := slices.Clone(s.topics)
	now := s.Now()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var t topic.Topic
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			result.Skipped++
			continue
		}
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			result.Skipped++
			continue
		}
		if t.ID == "" {
			id, err := newID(now)
			if err != nil {
				return nil, errors.NewInternal(err)
			}
			t.ID = id
		}
		if existing[t.ID] {
			result.Skipped++
			continue
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = now
		}
		if t.ScheduledFor == "" {
			t.ScheduledFor = now.Format(topic.DateLayout)
		}
		normalizeLoaded(&t)

		existing[t.ID] = true
		next = append(next, t)
		result.Added++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	if result.Added == 0 {
		return result, nil
	}

	sortTopics(next)
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	s.topics = next
	return result, nil
}
