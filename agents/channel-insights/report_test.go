package channelinsights

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"insight-stack/internal/models"
)

func TestWriteReport(t *testing.T) {
	report := &models.DigestReport{
		Date:     time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Total:    2,
		Resolved: 1,
		Videos: []*models.VideoInsights{
			{
				Video: &models.Video{
					ID:          "abc123",
					Title:       "Building a Treehouse",
					PublishedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
					URL:         "https://www.youtube.com/watch?v=abc123",
				},
				Insights: models.InsightBundle{
					Sentiment: &models.Sentiment{Label: models.SentimentPositive, Score: 0.742},
					Summary:   "A treehouse gets built.",
					Entities: []models.Entity{
						{Text: "John Smith", Category: models.EntityPerson},
					},
				},
			},
			{
				Video: &models.Video{
					ID:          "def456",
					Title:       "Silent Film",
					PublishedAt: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
					URL:         "https://www.youtube.com/watch?v=def456",
				},
				Insights: models.InsightBundle{Entities: []models.Entity{}},
			},
		},
	}

	var buf strings.Builder
	WriteReport(&buf, report)
	out := buf.String()

	for _, want := range []string{
		"2026-03-14",
		"Videos analyzed: 2, transcripts resolved: 1",
		"Building a Treehouse",
		"Sentiment: Positive (0.742)",
		"Summary: A treehouse gets built.",
		"- John Smith (PERSON)",
		"Sentiment: Not available",
		"Summary: Not available",
		"Entities: none",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q\n%s", want, out)
		}
	}
}

func TestWriteReportTruncatesEntities(t *testing.T) {
	var entities []models.Entity
	for i := 0; i < 15; i++ {
		entities = append(entities, models.Entity{
			Text:     fmt.Sprintf("Entity%d", i),
			Category: models.EntityOrg,
		})
	}
	report := &models.DigestReport{
		Date:  time.Now(),
		Total: 1,
		Videos: []*models.VideoInsights{
			{
				Video:    &models.Video{Title: "Crowded", URL: "u"},
				Insights: models.InsightBundle{Entities: entities},
			},
		},
	}

	var buf strings.Builder
	WriteReport(&buf, report)
	out := buf.String()

	if !strings.Contains(out, "Entity9") {
		t.Error("expected the tenth entity to be listed")
	}
	if strings.Contains(out, "Entity10") {
		t.Error("expected entities beyond the tenth to be omitted")
	}
	if !strings.Contains(out, "... and 5 more") {
		t.Errorf("expected overflow count line\n%s", out)
	}
}
