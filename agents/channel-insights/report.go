package channelinsights

import (
	"fmt"
	"io"

	"insight-stack/internal/models"
)

// maxEntitiesShown caps the entity list per video in console output.
const maxEntitiesShown = 10

// WriteReport renders a digest report as a plain-text console report.
func WriteReport(w io.Writer, report *models.DigestReport) {
	fmt.Fprintf(w, "\n=== Channel Insights: %s ===\n", report.Date.Format("2006-01-02"))
	fmt.Fprintf(w, "Videos analyzed: %d, transcripts resolved: %d\n", report.Total, report.Resolved)

	for _, vi := range report.Videos {
		fmt.Fprintf(w, "\n%s\n", vi.Video.Title)
		fmt.Fprintf(w, "  Published: %s\n", vi.Video.PublishedAt.Format("2006-01-02"))
		fmt.Fprintf(w, "  URL: %s\n", vi.Video.URL)

		if vi.Insights.Sentiment != nil {
			fmt.Fprintf(w, "  Sentiment: %s (%.3f)\n", vi.Insights.Sentiment.Label, vi.Insights.Sentiment.Score)
		} else {
			fmt.Fprintf(w, "  Sentiment: Not available\n")
		}

		if vi.Insights.Summary != "" {
			fmt.Fprintf(w, "  Summary: %s\n", vi.Insights.Summary)
		} else {
			fmt.Fprintf(w, "  Summary: Not available\n")
		}

		writeEntities(w, vi.Insights.Entities)
	}
	fmt.Fprintln(w)
}

func writeEntities(w io.Writer, entities []models.Entity) {
	if len(entities) == 0 {
		fmt.Fprintf(w, "  Entities: none\n")
		return
	}

	fmt.Fprintf(w, "  Entities:\n")
	shown := entities
	if len(shown) > maxEntitiesShown {
		shown = shown[:maxEntitiesShown]
	}
	for _, ent := range shown {
		fmt.Fprintf(w, "    - %s (%s)\n", ent.Text, ent.Category)
	}
	if extra := len(entities) - maxEntitiesShown; extra > 0 {
		fmt.Fprintf(w, "    ... and %d more\n", extra)
	}
}
