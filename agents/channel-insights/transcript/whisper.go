package transcript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"insight-stack/shared/config"
)

// WhisperTranscriber runs a local whisper.cpp-compatible binary over an audio
// file and returns its text output. Availability is decided once at
// construction: if the binary is missing, the capability stays off for the
// life of the process.
type WhisperTranscriber struct {
	binary    string
	model     string
	available bool
}

func NewWhisperTranscriber(cfg *config.TranscribeConfig) *WhisperTranscriber {
	t := &WhisperTranscriber{
		binary: cfg.WhisperBinary,
		model:  cfg.WhisperModel,
	}

	if _, err := exec.LookPath(t.binary); err != nil {
		log.Printf("Warning: speech-to-text binary %q not found, transcription fallback disabled: %v", t.binary, err)
		return t
	}

	t.available = true
	return t
}

func (t *WhisperTranscriber) Available() bool {
	return t.available
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if !t.available {
		return "", errors.New("speech-to-text model not available")
	}

	args := []string{"--no-timestamps", "--no-prints"}
	if t.model != "" {
		args = append(args, "-m", t.model)
	}
	args = append(args, "-f", audioPath)

	cmd := exec.CommandContext(ctx, t.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", errors.New("whisper produced no output")
	}
	return text, nil
}
