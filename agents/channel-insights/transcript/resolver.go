package transcript

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrNoTranscript is returned when both retrieval methods fail; callers get
// a single "no transcript obtained" signal rather than typed failures.
var ErrNoTranscript = errors.New("no transcript obtained")

// Languages requested from the caption service, in priority order.
var preferredLanguages = []string{"en", "en-US", "en-GB"}

// CaptionSource retrieves published caption text for a video.
type CaptionSource interface {
	FetchCaptions(ctx context.Context, videoID string, langs []string) (string, error)
}

// AudioDownloader fetches a video's audio stream to a local file.
type AudioDownloader interface {
	Download(ctx context.Context, videoURL string) (string, error)
}

// SpeechTranscriber converts an audio file to text. Available reports
// whether the underlying model loaded at process start.
type SpeechTranscriber interface {
	Available() bool
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Resolver turns a video reference into transcript text using two methods:
// captions first, then audio download plus speech-to-text. Each method is
// attempted at most once, in that order, with no retries.
type Resolver struct {
	captions    CaptionSource
	downloader  AudioDownloader
	transcriber SpeechTranscriber
}

func NewResolver(captions CaptionSource, downloader AudioDownloader, transcriber SpeechTranscriber) *Resolver {
	return &Resolver{
		captions:    captions,
		downloader:  downloader,
		transcriber: transcriber,
	}
}

// Resolve returns the transcript for the given video reference, or
// ErrNoTranscript when neither method produced text.
func (r *Resolver) Resolve(ctx context.Context, videoRef string) (string, error) {
	videoID := ExtractVideoID(videoRef)

	// Method 1: published captions
	text, err := r.captions.FetchCaptions(ctx, videoID, preferredLanguages)
	if err == nil && text != "" {
		log.Printf("Got transcript for %s via captions (%d chars)", videoID, len(text))
		return text, nil
	}
	log.Printf("Captions failed for %s: %s. Trying speech-to-text...", videoID, truncateReason(err, 100))

	// Method 2: audio download + speech-to-text
	if !r.transcriber.Available() {
		log.Printf("Speech-to-text model not available, skipping %s", videoID)
		return "", ErrNoTranscript
	}

	audioPath, err := r.downloader.Download(ctx, videoRef)
	if err != nil {
		log.Printf("Audio download failed for %s: %s", videoID, truncateReason(err, 100))
		return "", ErrNoTranscript
	}
	// Best-effort cleanup on success and failure alike
	defer func() { _ = os.Remove(audioPath) }()

	text, err = r.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		log.Printf("Speech-to-text failed for %s: %s", videoID, truncateReason(err, 100))
		return "", ErrNoTranscript
	}

	log.Printf("Got transcript for %s via speech-to-text (%d chars)", videoID, len(text))
	return text, nil
}

// ExtractVideoID derives the bare video id from a watch URL, a youtu.be
// short link, or an already-bare id.
func ExtractVideoID(videoRef string) string {
	u, err := url.Parse(videoRef)
	if err != nil || u.Host == "" {
		// Not a URL; treat as a bare id
		return videoRef
	}
	if strings.HasSuffix(u.Host, "youtu.be") {
		return strings.TrimPrefix(u.Path, "/")
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	// Fall back to the last path segment (e.g. /embed/<id>, /shorts/<id>)
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	return parts[len(parts)-1]
}

func truncateReason(err error, maxLength int) string {
	if err == nil {
		return "empty result"
	}
	msg := err.Error()
	if len(msg) <= maxLength {
		return msg
	}
	// Back off to a rune boundary so multi-byte characters stay intact
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return fmt.Sprintf("%s...", msg[:cut])
}
