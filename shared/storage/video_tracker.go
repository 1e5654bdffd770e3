package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// VideoTracker manages a persistent store of processed video IDs so repeated
// runs do not re-resolve and re-analyze the same videos.
type VideoTracker struct {
	filePath     string
	processedIDs map[string]time.Time
	mu           sync.RWMutex
	maxAge       time.Duration
}

// TrackedVideo represents a video that has been processed
type TrackedVideo struct {
	VideoID     string    `json:"video_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

// NewVideoTracker creates a new video tracker with persistent storage
func NewVideoTracker(dataDir string, maxAge time.Duration) (*VideoTracker, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tracker := &VideoTracker{
		filePath:     filepath.Join(dataDir, "processed_videos.json"),
		processedIDs: make(map[string]time.Time),
		maxAge:       maxAge,
	}

	if err := tracker.load(); err != nil {
		return nil, fmt.Errorf("failed to load video tracker data: %w", err)
	}

	tracker.cleanup()

	return tracker, nil
}

// IsProcessed checks if a video ID has been processed recently
func (vt *VideoTracker) IsProcessed(videoID string) bool {
	vt.mu.RLock()
	defer vt.mu.RUnlock()

	processedAt, exists := vt.processedIDs[videoID]
	if !exists {
		return false
	}

	return time.Since(processedAt) < vt.maxAge
}

// MarkProcessed marks a video ID as processed
func (vt *VideoTracker) MarkProcessed(videoID string) error {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	vt.processedIDs[videoID] = time.Now()
	return vt.save()
}

// MarkMultipleProcessed marks multiple video IDs as processed in batch
func (vt *VideoTracker) MarkMultipleProcessed(videoIDs []string) error {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	now := time.Now()
	for _, videoID := range videoIDs {
		vt.processedIDs[videoID] = now
	}
	return vt.save()
}

// ProcessedCount returns the number of tracked videos
func (vt *VideoTracker) ProcessedCount() int {
	vt.mu.RLock()
	defer vt.mu.RUnlock()
	return len(vt.processedIDs)
}

// cleanup removes entries older than maxAge
func (vt *VideoTracker) cleanup() {
	cutoff := time.Now().Add(-vt.maxAge)

	for videoID, processedAt := range vt.processedIDs {
		if processedAt.Before(cutoff) {
			delete(vt.processedIDs, videoID)
		}
	}
}

func (vt *VideoTracker) load() error {
	file, err := os.Open(vt.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet, start with empty tracker
			return nil
		}
		return fmt.Errorf("failed to open tracker file: %w", err)
	}
	defer file.Close()

	var trackedVideos []TrackedVideo
	if err := json.NewDecoder(file).Decode(&trackedVideos); err != nil {
		return fmt.Errorf("failed to decode tracker data: %w", err)
	}

	for _, tv := range trackedVideos {
		vt.processedIDs[tv.VideoID] = tv.ProcessedAt
	}

	return nil
}

func (vt *VideoTracker) save() error {
	var trackedVideos []TrackedVideo
	for videoID, processedAt := range vt.processedIDs {
		trackedVideos = append(trackedVideos, TrackedVideo{
			VideoID:     videoID,
			ProcessedAt: processedAt,
		})
	}

	file, err := os.Create(vt.filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(trackedVideos)
}
