package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreReopensAndPreservesOrder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.jsonl")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Append(ctx, sampleTx(1, now)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(ctx, sampleTx(2, now.Add(time.Minute))); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	out, err := reopened.Scan(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("unexpected records after reopen: %+v", out)
	}
}

func TestFileStoreMissingFileIsEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist-yet.jsonl")
	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	out, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty ledger, got %d records", len(out))
	}
}
