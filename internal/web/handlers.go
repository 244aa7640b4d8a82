package web

import (
	"net/http"

	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/queue"
	"github.com/hpungsan/planq/internal/topic"
)

// Handlers contains HTTP route handlers for the read-only queue viewer.
type Handlers struct {
	store    *queue.Store
	renderer *Renderer
}

// HandleQueue handles GET /queue with an optional view filter:
// "today" and "ready" narrow the listing, anything else shows the
// whole queue.
func (h *Handlers) HandleQueue(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")

	var topics []topic.Topic
	var title, nav string
	switch view {
	case "today":
		topics = h.store.Today()
		title, nav = "Today", "today"
	case "ready":
		topics = readyTopics(h.store)
		title, nav = "Drafts ready", "ready"
	default:
		topics = h.store.All()
		title, nav, view = "Queue", "queue", "all"
	}

	h.renderer.renderPage(w, "queue", QueuePageData{
		PageData: PageData{
			Title:   title,
			Version: h.renderer.version,
			Nav:     nav,
		},
		Topics:      topics,
		View:        view,
		Count:       len(topics),
		DraftsReady: h.store.DraftsReady(),
		Today:       h.store.Now().Format(topic.DateLayout),
	})
}

// HandleTopic handles GET /topics/{id} — view a single topic and its draft.
func (h *Handlers) HandleTopic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("topic id is required"))
		return
	}

	t, err := h.store.Get(id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := TopicPageData{
		PageData: PageData{
			Title:   t.Text,
			Version: h.renderer.version,
			Nav:     "queue",
		},
		Topic: *t,
	}
	if t.HasDraft() {
		data.RenderedHTML = renderMarkdown(t.Draft)
	}

	h.renderer.renderPage(w, "topic", data)
}

// readyTopics returns the unposted topics that already have a draft,
// in queue order.
func readyTopics(store *queue.Store) []topic.Topic {
	all := store.All()
	out := make([]topic.Topic, 0, len(all))
	for _, t := range all {
		if t.Status != topic.StatusPosted && t.HasDraft() {
			out = append(out, t)
		}
	}
	return out
}
