package channelinsights

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"insight-stack/agents/channel-insights/insights"
	"insight-stack/agents/channel-insights/transcript"
	"insight-stack/agents/channel-insights/youtube"
	"insight-stack/internal/models"
	"insight-stack/shared/config"
	"insight-stack/shared/email"
	"insight-stack/shared/scheduler"
	"insight-stack/shared/storage"
)

// ErrNoVideos is returned when the channel listing yields nothing to analyze.
var ErrNoVideos = errors.New("no videos found for channel")

// InsightMetrics represents the metrics collected during a channel analysis run
type InsightMetrics struct {
	VideosFound         int  `json:"videos_found"`
	VideosAnalyzed      int  `json:"videos_analyzed"`
	TranscriptsResolved int  `json:"transcripts_resolved"`
	EmailSent           bool `json:"email_sent"`
}

// GetSummary implements the scheduler.Metrics interface
func (m InsightMetrics) GetSummary() string {
	summary := fmt.Sprintf("analyzed %d of %d videos, %d transcripts resolved",
		m.VideosAnalyzed, m.VideosFound, m.TranscriptsResolved)
	if m.EmailSent {
		summary += ", digest emailed"
	}
	return summary
}

type videoLister interface {
	ListChannelVideos(ctx context.Context, channelURL string, max int64) ([]*models.Video, error)
}

type transcriptResolver interface {
	Resolve(ctx context.Context, videoRef string) (string, error)
}

type digestSender interface {
	SendDigest(report *models.DigestReport) error
}

// ChannelInsightsAgent implements the scheduler.Agent interface
type ChannelInsightsAgent struct {
	config    *config.Config
	videos    videoLister
	resolver  transcriptResolver
	extractor *insights.Extractor
	tracker   *storage.VideoTracker
	sender    digestSender
}

func NewChannelInsightsAgent(cfg *config.Config) *ChannelInsightsAgent {
	return &ChannelInsightsAgent{
		config: cfg,
	}
}

func (a *ChannelInsightsAgent) Name() string {
	return "Channel Insights Agent"
}

func (a *ChannelInsightsAgent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.videos == nil {
		client, err := youtube.NewClient(&a.config.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		a.videos = client
		log.Println("YouTube client initialized")
	}

	if a.resolver == nil {
		a.resolver = transcript.NewResolver(
			transcript.NewCaptionsClient(),
			transcript.NewYtDlpDownloader(a.config.Transcribe.YtDlpBinary),
			transcript.NewWhisperTranscriber(&a.config.Transcribe),
		)
	}

	if a.extractor == nil {
		var summarizer insights.Summarizer
		gemini, err := insights.NewGeminiSummarizer(context.Background(), a.config.AI.GeminiAPIKey, a.config.AI.Model)
		if err != nil {
			log.Printf("Warning: summarization disabled: %v", err)
		} else {
			summarizer = gemini
		}

		tagger := insights.NewHFEntityTagger(a.config.Entities.Endpoint, a.config.Entities.Token)
		a.extractor = insights.NewExtractor(insights.NewVaderScorer(), summarizer, tagger)
	}

	if a.tracker == nil {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "./data"
		}
		tracker, err := storage.NewVideoTracker(dataDir, 30*24*time.Hour)
		if err != nil {
			return fmt.Errorf("failed to initialize video tracker: %w", err)
		}
		a.tracker = tracker
	}

	if a.sender == nil && a.config.EmailConfigured() {
		a.sender = email.NewSender(&a.config.Email)
		log.Println("Email digests enabled")
	}

	log.Printf("Configured for %s (up to %d videos per run)", a.config.ChannelURL, a.config.MaxVideos)
	return nil
}

func (a *ChannelInsightsAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()
	metrics := InsightMetrics{}

	log.Printf("Listing videos for %s...", a.config.ChannelURL)
	videos, err := a.videos.ListChannelVideos(ctx, a.config.ChannelURL, int64(a.config.MaxVideos))
	if err != nil {
		if events != nil && events.OnCriticalFailure != nil {
			events.OnCriticalFailure(fmt.Errorf("failed to list channel videos: %w", err), time.Since(startTime))
		}
		return fmt.Errorf("failed to list channel videos: %w", err)
	}
	metrics.VideosFound = len(videos)

	if len(videos) == 0 {
		if events != nil && events.OnCriticalFailure != nil {
			events.OnCriticalFailure(ErrNoVideos, time.Since(startTime))
		}
		return ErrNoVideos
	}

	report := &models.DigestReport{Date: time.Now()}
	var processedIDs []string

	for _, video := range videos {
		if a.tracker.IsProcessed(video.ID) {
			log.Printf("Skipping already analyzed video: %s", video.Title)
			continue
		}

		log.Printf("Analyzing %q (%s)...", video.Title, video.ID)

		text, err := a.resolver.Resolve(ctx, video.URL)
		if err != nil {
			// No transcript means no insights, but the video still shows up
			// in the report so a run's coverage is visible.
			log.Printf("Warning: no transcript for %s: %v", video.ID, err)
			if events != nil && events.OnPartialFailure != nil {
				events.OnPartialFailure(fmt.Errorf("transcript for %s: %w", video.ID, err), time.Since(startTime))
			}
			text = ""
		} else {
			metrics.TranscriptsResolved++
		}

		bundle := a.extractor.Extract(ctx, text)
		report.Videos = append(report.Videos, &models.VideoInsights{
			Video:    video,
			Insights: bundle,
		})
		metrics.VideosAnalyzed++
		processedIDs = append(processedIDs, video.ID)
	}

	report.Total = metrics.VideosAnalyzed
	report.Resolved = metrics.TranscriptsResolved

	if metrics.VideosAnalyzed == 0 {
		log.Println("No new videos to analyze")
		if events != nil && events.OnSuccess != nil {
			events.OnSuccess(metrics, time.Since(startTime))
		}
		return nil
	}

	WriteReport(os.Stdout, report)

	if a.sender != nil {
		if err := a.sender.SendDigest(report); err != nil {
			log.Printf("Warning: failed to send digest email: %v", err)
			if events != nil && events.OnPartialFailure != nil {
				events.OnPartialFailure(fmt.Errorf("digest email: %w", err), time.Since(startTime))
			}
		} else {
			metrics.EmailSent = true
		}
	}

	if err := a.tracker.MarkMultipleProcessed(processedIDs); err != nil {
		log.Printf("Warning: failed to record processed videos: %v", err)
	}

	log.Printf("Run complete: %s", metrics.GetSummary())
	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, time.Since(startTime))
	}
	return nil
}
