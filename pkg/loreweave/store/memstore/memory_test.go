package memstore

import (
	"context"
	"testing"

	"github.com/loreweave/loreweave/pkg/loreweave/store"
)

func TestPutGetRecord(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	rec := store.Record{ID: "a", Content: "The Mistmarch", Source: "test"}
	if err := s.PutRecord(ctx, rec); err != nil {
		t.Fatalf("PutRecord: %v", err)
	}

	got, ok, err := s.GetRecord(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("GetRecord: %v ok=%v", err, ok)
	}
	if got.Content != rec.Content || got.Source != rec.Source {
		t.Errorf("GetRecord = %+v, want %+v", got, rec)
	}

	if _, ok, _ := s.GetRecord(ctx, "missing"); ok {
		t.Error("GetRecord should miss unknown id")
	}
}

func TestPutRecordReplaces(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.PutRecord(ctx, store.Record{ID: "a", Content: "old"})
	s.PutRecord(ctx, store.Record{ID: "a", Content: "new"})

	got, _, _ := s.GetRecord(ctx, "a")
	if got.Content != "new" {
		t.Errorf("Content = %q, want replacement", got.Content)
	}
	if n, _ := s.CountRecords(ctx); n != 1 {
		t.Errorf("CountRecords = %d, want 1", n)
	}
}

func TestListRecordsOrdered(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"c", "a", "b"} {
		s.PutRecord(ctx, store.Record{ID: id, Content: id})
	}

	recs, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, r := range recs {
		if r.ID != want[i] {
			t.Errorf("ListRecords[%d] = %q, want %q", i, r.ID, want[i])
		}
	}
}

func TestSaveGetRun(t *testing.T) {
	ctx := context.Background()
	s := New()

	run := store.Run{RunID: "01A", RecordCount: 3, SuccessRate: 0.9, ClassificationsJSON: "[]"}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, ok, err := s.GetRun(ctx, "01A")
	if err != nil || !ok {
		t.Fatalf("GetRun: %v ok=%v", err, ok)
	}
	if got.SuccessRate != 0.9 || got.RecordCount != 3 {
		t.Errorf("GetRun = %+v", got)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"01A", "01B", "01C"} {
		s.SaveRun(ctx, store.Run{RunID: id})
	}

	runs, _ := s.ListRuns(ctx, 2)
	if len(runs) != 2 {
		t.Fatalf("ListRuns = %d results, want 2", len(runs))
	}
	if runs[0].RunID != "01C" || runs[1].RunID != "01B" {
		t.Errorf("ListRuns order = %s, %s, want 01C, 01B", runs[0].RunID, runs[1].RunID)
	}

	all, _ := s.ListRuns(ctx, 0)
	if len(all) != 3 {
		t.Errorf("ListRuns(0) = %d results, want all 3", len(all))
	}
}
