package storage

import (
	"testing"
	"time"
)

func TestVideoTrackerMarkAndCheck(t *testing.T) {
	tracker, err := NewVideoTracker(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewVideoTracker() error: %v", err)
	}

	if tracker.IsProcessed("abc123") {
		t.Error("unprocessed video reported as processed")
	}

	if err := tracker.MarkProcessed("abc123"); err != nil {
		t.Fatalf("MarkProcessed() error: %v", err)
	}

	if !tracker.IsProcessed("abc123") {
		t.Error("processed video not reported as processed")
	}
}

func TestVideoTrackerPersistence(t *testing.T) {
	dir := t.TempDir()

	tracker, err := NewVideoTracker(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewVideoTracker() error: %v", err)
	}
	if err := tracker.MarkMultipleProcessed([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("MarkMultipleProcessed() error: %v", err)
	}

	// Reload from disk
	reloaded, err := NewVideoTracker(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewVideoTracker() reload error: %v", err)
	}

	if count := reloaded.ProcessedCount(); count != 3 {
		t.Errorf("ProcessedCount() after reload = %d, want 3", count)
	}
	if !reloaded.IsProcessed("b") {
		t.Error("video 'b' lost across reload")
	}
}

func TestVideoTrackerExpiry(t *testing.T) {
	tracker, err := NewVideoTracker(t.TempDir(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewVideoTracker() error: %v", err)
	}

	if err := tracker.MarkProcessed("old"); err != nil {
		t.Fatalf("MarkProcessed() error: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if tracker.IsProcessed("old") {
		t.Error("expired entry still reported as processed")
	}
}
