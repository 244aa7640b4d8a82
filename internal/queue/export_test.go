package queue

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hpungsan/planq/internal/storage"
	"github.com/hpungsan/planq/internal/topic"
)

func TestExportImport_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := s.Add(ctx, topic.Input{Text: "first", ScheduledFor: "2024-06-01"})
	b, _ := s.Add(ctx, topic.Input{Text: "second", ScheduledFor: "2024-06-02", Hashtags: "#go"})
	if _, err := s.Mutate(ctx, b.ID, func(tp *topic.Topic) {
		tp.Draft = "draft"
		tp.Status = topic.StatusGenerated
	}); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	var buf bytes.Buffer
	count, err := s.Export(&buf)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Export count = %d, want 2", count)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Errorf("export has %d lines, want 2", lines)
	}

	// Import into a fresh store restores the collection.
	fresh, err := Open(ctx, storage.NewMemory(), testFallbacks)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	result, err := fresh.Import(ctx, &buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Added != 2 || result.Skipped != 0 {
		t.Errorf("Import = %+v, want 2 added, 0 skipped", result)
	}

	got := fresh.All()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Error("imported queue lost records or order")
	}
	if got[1].Draft != "draft" || got[1].Status != topic.StatusGenerated {
		t.Error("imported queue lost draft or status")
	}
}

func TestImport_SkipsBadAndDuplicateLines(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	existing, _ := s.Add(ctx, topic.Input{Text: "already here"})

	input := strings.Join([]string{
		`{"id":"` + existing.ID + `","topic":"collides"}`,
		`not json at all`,
		`{"topic":"   "}`,
		`{"topic":"kept","scheduled_for":"2024-06-20"}`,
		``,
	}, "\n")

	result, err := s.Import(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Added != 1 {
		t.Errorf("Added = %d, want 1", result.Added)
	}
	if result.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", result.Skipped)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	assertSorted(t, s.All())
}

func TestImport_NormalizesLoadedShape(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// No id, no status, no dates: everything gets defaulted.
	result, err := s.Import(ctx, strings.NewReader(`{"topic":"bare"}`))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("Added = %d, want 1", result.Added)
	}

	got := s.All()[0]
	if got.ID == "" {
		t.Error("imported record should get a fresh id")
	}
	if got.Status != topic.StatusScheduled {
		t.Errorf("Status = %q, want scheduled", got.Status)
	}
	if got.ScheduledFor == "" {
		t.Error("ScheduledFor should default to today")
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be defaulted")
	}
}
