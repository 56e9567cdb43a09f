package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"dashcap/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, history.Run{
		Folder:       "/recordings/trip-001",
		VideoPath:    "/recordings/trip-001/drive.mp4",
		MetadataPath: "/recordings/trip-001/drive.json",
		SubtitlePath: "/recordings/trip-001/drive.srt",
		SampleCount:  42,
		SkippedCount: 3,
		Status:       history.StatusCompleted,
		CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected run ID to be assigned")
	}

	second, err := store.Record(ctx, history.Run{
		Folder:       "/recordings/trip-002",
		VideoPath:    "/recordings/trip-002/drive.ts",
		MetadataPath: "/recordings/trip-002/drive.json",
		SubtitlePath: "/recordings/trip-002/drive.srt",
		OutputPath:   "/recordings/trip-002/drive_subtitled.mp4",
		SampleCount:  10,
		Status:       history.StatusCompleted,
		CreatedAt:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID {
		t.Fatalf("expected newest run first, got %q", runs[0].ID)
	}
	if runs[0].OutputPath != "/recordings/trip-002/drive_subtitled.mp4" {
		t.Fatalf("unexpected output path: %q", runs[0].OutputPath)
	}
	if runs[1].OutputPath != "" {
		t.Fatalf("expected empty output path for srt-only run, got %q", runs[1].OutputPath)
	}
	if runs[1].SampleCount != 42 || runs[1].SkippedCount != 3 {
		t.Fatalf("unexpected counts: %+v", runs[1])
	}
	if !runs[1].CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("unexpected created_at: %v", runs[1].CreatedAt)
	}
}

func TestRecordDefaultsIDTimestampStatus(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	before := time.Now().UTC()
	run, err := store.Record(ctx, history.Run{Folder: "/recordings/trip-003"})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected generated ID")
	}
	if run.Status != history.StatusCompleted {
		t.Fatalf("expected default status, got %q", run.Status)
	}
	if run.CreatedAt.Before(before.Add(-time.Second)) {
		t.Fatalf("expected recent created_at, got %v", run.CreatedAt)
	}
}

func TestRecordFailedRunKeepsError(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, history.Run{
		Folder:       "/recordings/trip-004",
		Status:       history.StatusFailed,
		ErrorMessage: "ffmpeg exited with status 1",
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	runs, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Status != history.StatusFailed {
		t.Fatalf("unexpected status: %q", runs[0].Status)
	}
	if runs[0].ErrorMessage != "ffmpeg exited with status 1" {
		t.Fatalf("unexpected error message: %q", runs[0].ErrorMessage)
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, history.Run{
			Folder:    "/recordings/batch",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].CreatedAt.After(runs[1].CreatedAt) {
		t.Fatalf("expected newest first, got %v then %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Run{Folder: "/recordings/trip-005"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Folder != "/recordings/trip-005" {
		t.Fatalf("unexpected rows after reopen: %+v", runs)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("raw open failed: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("raw close failed: %v", err)
	}

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch error, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := history.Open("   "); err == nil {
		t.Fatal("expected error for blank path")
	}
}
