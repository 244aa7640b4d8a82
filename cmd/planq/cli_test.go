package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpungsan/planq/internal/config"
	"github.com/hpungsan/planq/internal/draft"
	"github.com/hpungsan/planq/internal/queue"
	"github.com/hpungsan/planq/internal/storage"
	"github.com/hpungsan/planq/internal/topic"
)

// stubService returns a fixed draft for every request.
type stubService struct {
	text string
	err  error
}

func (s *stubService) Generate(context.Context, draft.Request) (string, error) {
	return s.text, s.err
}

// setupApp creates an appState over an in-memory store.
func setupApp(t *testing.T, svc draft.Service) *appState {
	t.Helper()

	cfg := config.DefaultConfig()
	store, err := queue.Open(context.Background(), storage.NewMemory(), cfg.Fallbacks())
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}

	baseDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(baseDir, "exports"), 0700); err != nil {
		t.Fatalf("mkdir exports: %v", err)
	}

	return &appState{
		store:   store,
		gen:     draft.NewClient(store, svc),
		cfg:     cfg,
		baseDir: baseDir,
	}
}

// runCLI runs the app with the given args, capturing stdout.
func runCLI(t *testing.T, a *appState, args ...string) (string, error) {
	t.Helper()

	app := newCLIApp(a)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"planq"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

// TestCLIAdd tests the add command.
func TestCLIAdd(t *testing.T) {
	a := setupApp(t, &stubService{})

	out, err := runCLI(t, a, "add", "--hashtags=go,ship", "--date=2030-06-01", "Shipping", "fast")
	if err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	var created topic.Topic
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}

	if created.ID == "" {
		t.Error("expected non-empty ID")
	}
	if created.Text != "Shipping fast" {
		t.Errorf("expected joined topic text, got %q", created.Text)
	}
	if created.Status != topic.StatusScheduled {
		t.Errorf("expected status scheduled, got %q", created.Status)
	}
	if created.Audience != a.cfg.DefaultAudience {
		t.Errorf("expected preset audience, got %q", created.Audience)
	}
	if len(created.Hashtags) != 2 || created.Hashtags[0] != "go" {
		t.Errorf("unexpected hashtags: %v", created.Hashtags)
	}
}

// TestCLIAddMissingText tests validation of the add command.
func TestCLIAddMissingText(t *testing.T) {
	a := setupApp(t, &stubService{})

	_, err := runCLI(t, a, "add")
	if err == nil {
		t.Fatal("expected error for missing topic text")
	}
	if !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("expected INVALID_REQUEST in error, got %v", err)
	}
	if a.store.Len() != 0 {
		t.Error("rejected add must not mutate the store")
	}
}

// TestCLIList tests the list command.
func TestCLIList(t *testing.T) {
	a := setupApp(t, &stubService{})
	for _, text := range []string{"first", "second", "third"} {
		if _, err := a.store.Add(context.Background(), topic.Input{Text: text}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	out, err := runCLI(t, a, "list")
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var output listOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.Count != 3 {
		t.Errorf("expected count=3, got %d", output.Count)
	}
	if len(output.Topics) != 3 {
		t.Errorf("expected 3 topics, got %d", len(output.Topics))
	}
}

// TestCLIToday tests the today command.
func TestCLIToday(t *testing.T) {
	a := setupApp(t, &stubService{})
	today := a.store.Now().Format(topic.DateLayout)
	if _, err := a.store.Add(context.Background(), topic.Input{Text: "due", ScheduledFor: today}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := a.store.Add(context.Background(), topic.Input{Text: "future", ScheduledFor: "2099-01-01"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := runCLI(t, a, "today")
	if err != nil {
		t.Fatalf("today command failed: %v", err)
	}

	var output listOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.Count != 1 {
		t.Errorf("expected count=1, got %d", output.Count)
	}
}

// TestCLIShow tests the show command.
func TestCLIShow(t *testing.T) {
	a := setupApp(t, &stubService{})
	created, err := a.store.Add(context.Background(), topic.Input{Text: "show me"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := runCLI(t, a, "show", created.ID)
	if err != nil {
		t.Fatalf("show command failed: %v", err)
	}

	var got topic.Topic
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected ID=%s, got %s", created.ID, got.ID)
	}

	t.Run("not found", func(t *testing.T) {
		_, err := runCLI(t, a, "show", "MISSING")
		if err == nil || !strings.Contains(err.Error(), "NOT_FOUND") {
			t.Errorf("expected NOT_FOUND error, got %v", err)
		}
	})
}

// TestCLIGenerate tests the generate command.
func TestCLIGenerate(t *testing.T) {
	a := setupApp(t, &stubService{text: "A fresh draft."})
	created, err := a.store.Add(context.Background(), topic.Input{Text: "draft me"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := runCLI(t, a, "generate", created.ID)
	if err != nil {
		t.Fatalf("generate command failed: %v", err)
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output["draft"] != "A fresh draft." {
		t.Errorf("expected draft in output, got %v", output["draft"])
	}

	after, err := a.store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if after.Status != topic.StatusGenerated {
		t.Errorf("expected status generated, got %q", after.Status)
	}
}

// TestCLIPostUnpost tests the post and unpost commands.
func TestCLIPostUnpost(t *testing.T) {
	a := setupApp(t, &stubService{text: "draft"})
	created, err := a.store.Add(context.Background(), topic.Input{Text: "cycle"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Posting before a draft exists is rejected
	if _, err := runCLI(t, a, "post", created.ID); err == nil {
		t.Error("expected error posting a scheduled topic")
	}

	if _, err := a.gen.Generate(context.Background(), created.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, err := runCLI(t, a, "post", created.ID)
	if err != nil {
		t.Fatalf("post command failed: %v", err)
	}
	var posted topic.Topic
	if err := json.Unmarshal([]byte(out), &posted); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if posted.Status != topic.StatusPosted {
		t.Errorf("expected status posted, got %q", posted.Status)
	}

	out, err = runCLI(t, a, "unpost", created.ID)
	if err != nil {
		t.Fatalf("unpost command failed: %v", err)
	}
	var back topic.Topic
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if back.Status != topic.StatusGenerated {
		t.Errorf("expected status generated, got %q", back.Status)
	}
	if back.Draft == "" {
		t.Error("unpost must not drop the draft")
	}
}

// TestCLIRemove tests the remove command.
func TestCLIRemove(t *testing.T) {
	a := setupApp(t, &stubService{})
	created, err := a.store.Add(context.Background(), topic.Input{Text: "temp"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := runCLI(t, a, "remove", created.ID)
	if err != nil {
		t.Fatalf("remove command failed: %v", err)
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output["removed"] != true {
		t.Error("expected removed=true")
	}

	// Removing again is not an error
	out, err = runCLI(t, a, "remove", created.ID)
	if err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output["removed"] != false {
		t.Error("expected removed=false on second remove")
	}
}

// TestCLIExportImport tests export/import round-tripping.
func TestCLIExportImport(t *testing.T) {
	a := setupApp(t, &stubService{})
	for _, text := range []string{"one", "two"} {
		if _, err := a.store.Add(context.Background(), topic.Input{Text: text}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "queue.jsonl")
	out, err := runCLI(t, a, "export", "--path", path)
	if err != nil {
		t.Fatalf("export command failed: %v", err)
	}
	var exported map[string]any
	if err := json.Unmarshal([]byte(out), &exported); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if exported["exported"] != float64(2) {
		t.Errorf("expected exported=2, got %v", exported["exported"])
	}

	b := setupApp(t, &stubService{})
	out, err = runCLI(t, b, "import", "--path", path)
	if err != nil {
		t.Fatalf("import command failed: %v", err)
	}
	var result queue.ImportResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if result.Added != 2 {
		t.Errorf("expected added=2, got %d", result.Added)
	}
	if b.store.Len() != 2 {
		t.Errorf("expected 2 topics after import, got %d", b.store.Len())
	}
}

// TestIsCLIMode tests mode selection from argv.
func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"no args", []string{"planq"}, false},
		{"known command", []string{"planq", "list"}, true},
		{"help flag", []string{"planq", "--help"}, true},
		{"version flag", []string{"planq", "-v"}, true},
		{"unknown arg", []string{"planq", "bogus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			os.Args = tt.args
			defer func() { os.Args = oldArgs }()

			if got := isCLIMode(); got != tt.expected {
				t.Errorf("isCLIMode() = %v, want %v", got, tt.expected)
			}
		})
	}
}
