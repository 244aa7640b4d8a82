package queue

import (
	"github.com/hpungsan/planq/internal/topic"
)

// Today returns the topics scheduled for the current local calendar
// day that are not yet posted, in queue order. Computed fresh on
// every call; never mutates.
func (s *Store) Today() []topic.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Now().Format(topic.DateLayout)
	out := make([]topic.Topic, 0)
	for _, t := range s.topics {
		if t.ScheduledFor == today && t.Status != topic.StatusPosted {
			out = append(out, t)
		}
	}
	return out
}

// DraftsReady counts topics that have a draft and are not yet posted.
func (s *Store) DraftsReady() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, t := range s.topics {
		if t.Status != topic.StatusPosted && t.HasDraft() {
			count++
		}
	}
	return count
}
