package draft

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/queue"
	"github.com/hpungsan/planq/internal/topic"
)

// Client requests drafts for queued topics and folds the outcome into
// the queue store. Independent topics may generate concurrently; a
// second request for the same topic while one is outstanding is
// rejected.
type Client struct {
	store *queue.Store
	svc   Service

	// BrandVoice is applied to requests whose topic does not set its
	// own voice.
	BrandVoice string

	mu       sync.Mutex
	inflight map[string]bool
}

// NewClient creates a generation client over the given store and service.
func NewClient(store *queue.Store, svc Service) *Client {
	return &Client{
		store:    store,
		svc:      svc,
		inflight: make(map[string]bool),
	}
}

// Generate requests a draft for the topic with the given id and, on
// success, stores it with status=generated in a single mutation.
// Regeneration overwrites any previous draft without changing status
// history; there is no versioning. On failure the queue is left
// exactly as it was. Not retried.
func (c *Client) Generate(ctx context.Context, id string) (string, error) {
	t, err := c.store.Get(id)
	if err != nil {
		// Precondition: no topic, no request.
		return "", err
	}

	if err := c.acquire(id); err != nil {
		return "", err
	}
	defer c.release(id)

	req := RequestFor(t)
	if req.BrandVoice == "" {
		req.BrandVoice = c.BrandVoice
	}

	text, err := c.svc.Generate(ctx, req)
	if err != nil {
		if pErr, ok := err.(*errors.PlanqError); ok {
			return "", pErr
		}
		return "", errors.NewGenerationFailed(err.Error())
	}
	if text == "" {
		return "", errors.NewGenerationFailed("")
	}

	if _, err := c.store.Mutate(ctx, id, func(tp *topic.Topic) {
		tp.Draft = text
		tp.Status = topic.StatusGenerated
	}); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			// The topic was deleted while the request was in flight;
			// discard the stale result without failing the caller.
			slog.Info("discarding draft for deleted topic", slog.String("id", id))
			return text, nil
		}
		return "", err
	}

	return text, nil
}

// acquire marks id as having an outstanding request.
func (c *Client) acquire(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[id] {
		return errors.NewGenerationFailed("a generation request for this topic is already in flight")
	}
	c.inflight[id] = true
	return nil
}

func (c *Client) release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
}
