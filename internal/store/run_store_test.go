package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/msto63/cminus/foundation/cminus"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
)

func openTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	runs := []*Run{
		{Timestamp: base, Command: CommandParse, Source: "a.c-", Tokens: 3, Nodes: 4},
		{Timestamp: base.Add(time.Minute), Command: CommandParse, Source: "b.c-", Errors: 2, FirstErrorLine: 7,
			Messages: []string{"line 7:3: unexpected token -> ;", "line 9:1: unexpected token -> EOF"}},
		{Timestamp: base.Add(2 * time.Minute), Command: CommandScan, Source: "a.c-", Tokens: 5, Duration: 3 * time.Millisecond},
	}
	for _, r := range runs {
		if err := s.Record(ctx, r); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if r.ID == "" {
			t.Error("Record() should assign an ID")
		}
	}

	all, err := s.Query(ctx, RunFilter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Query() returned %d runs, want 3", len(all))
	}
	if all[0].Command != CommandScan || all[2].Source != "a.c-" {
		t.Errorf("Query() not ordered newest first: %v, %v", all[0].Command, all[2].Source)
	}
	if all[0].Duration != 3*time.Millisecond {
		t.Errorf("Duration = %v, want 3ms", all[0].Duration)
	}

	failed, err := s.Query(ctx, RunFilter{FailedOnly: true})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("FailedOnly returned %d runs, want 1", len(failed))
	}
	if failed[0].FirstErrorLine != 7 || len(failed[0].Messages) != 2 {
		t.Errorf("failed run = %+v", failed[0])
	}
	if failed[0].OK() {
		t.Error("OK() = true for a run with errors")
	}

	bySource, _ := s.Query(ctx, RunFilter{Source: "a.c-", Command: CommandParse})
	if len(bySource) != 1 {
		t.Errorf("Source+Command filter returned %d runs, want 1", len(bySource))
	}

	paged, _ := s.Query(ctx, RunFilter{Limit: 1, Offset: 1})
	if len(paged) != 1 || paged[0].Source != "b.c-" {
		t.Errorf("paged query = %+v", paged)
	}

	skipped, _ := s.Query(ctx, RunFilter{Offset: 2})
	if len(skipped) != 1 {
		t.Errorf("offset without limit returned %d runs, want 1", len(skipped))
	}

	recent, _ := s.Query(ctx, RunFilter{Since: base.Add(90 * time.Second)})
	if len(recent) != 1 {
		t.Errorf("Since filter returned %d runs, want 1", len(recent))
	}
}

func TestGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := &Run{Command: CommandParse, Source: "x.c-", Unterminated: true}
	if err := s.Record(ctx, run); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Source != "x.c-" || !got.Unterminated {
		t.Errorf("Get() = %+v", got)
	}

	_, err = s.Get(ctx, "missing")
	if !mdwerror.HasCode(err, mdwerror.CodeStoreError) {
		t.Errorf("Get(missing) error = %v, want STORE_ERROR", err)
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if empty.TotalRuns != 0 || !empty.LastRun.IsZero() {
		t.Errorf("Stats() on empty store = %+v", empty)
	}

	for _, r := range []*Run{
		{Command: CommandParse, Source: "a.c-"},
		{Command: CommandParse, Source: "a.c-", Errors: 3},
		{Command: CommandParse, Source: "b.c-", Errors: 1},
	} {
		if err := s.Record(ctx, r); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalRuns != 3 {
		t.Errorf("TotalRuns = %v, want 3", stats.TotalRuns)
	}
	if stats.FailedRuns != 2 {
		t.Errorf("FailedRuns = %v, want 2", stats.FailedRuns)
	}
	if stats.Sources != 2 {
		t.Errorf("Sources = %v, want 2", stats.Sources)
	}
	if stats.TotalErrors != 4 {
		t.Errorf("TotalErrors = %v, want 4", stats.TotalErrors)
	}
	if stats.RunsBySource["a.c-"] != 2 {
		t.Errorf("RunsBySource[a.c-] = %v, want 2", stats.RunsBySource["a.c-"])
	}
	if stats.LastRun.IsZero() {
		t.Error("LastRun should be set")
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := &Run{Timestamp: time.Now().Add(-48 * time.Hour), Command: CommandParse, Source: "old.c-"}
	fresh := &Run{Command: CommandParse, Source: "new.c-"}
	for _, r := range []*Run{old, fresh} {
		if err := s.Record(ctx, r); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	deleted, err := s.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune() deleted %d runs, want 1", deleted)
	}

	left, _ := s.Query(ctx, RunFilter{})
	if len(left) != 1 || left[0].Source != "new.c-" {
		t.Errorf("remaining runs = %+v", left)
	}
}

func TestFromResult(t *testing.T) {
	res, err := cminus.CompileString("bad.c-", "int ;\nint y;", cminus.Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	run := FromResult(CommandParse, res)
	if run.ID != res.RunID {
		t.Errorf("ID = %v, want %v", run.ID, res.RunID)
	}
	if run.Errors != 1 || run.FirstErrorLine != 1 || len(run.Messages) != 1 {
		t.Errorf("run = %+v", run)
	}
	if run.Nodes != res.Nodes || run.Tokens != res.Tokens {
		t.Errorf("counts = %d/%d, want %d/%d", run.Nodes, run.Tokens, res.Nodes, res.Tokens)
	}
}
