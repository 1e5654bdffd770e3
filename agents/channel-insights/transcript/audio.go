package transcript

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// YtDlpDownloader fetches the best audio-only stream of a video to a local
// file using the yt-dlp binary.
type YtDlpDownloader struct {
	binary  string
	tempDir string
}

func NewYtDlpDownloader(binary string) *YtDlpDownloader {
	return &YtDlpDownloader{
		binary:  binary,
		tempDir: os.TempDir(),
	}
}

// Download writes the audio stream to a uniquely named temp file and returns
// its path. The caller owns the file and is responsible for removing it.
// Every call gets its own path so concurrent or interleaved downloads can
// never contaminate each other.
func (d *YtDlpDownloader) Download(ctx context.Context, videoURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	dest := filepath.Join(d.tempDir, fmt.Sprintf("audio-%s.m4a", uuid.New().String()))

	cmd := exec.CommandContext(ctx, d.binary,
		"-f", "bestaudio",
		"--no-playlist",
		"--no-warnings",
		"-o", dest,
		videoURL,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("yt-dlp failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(dest)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(dest)
		return "", fmt.Errorf("no audio stream available for %s", videoURL)
	}

	return dest, nil
}
