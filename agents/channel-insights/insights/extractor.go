package insights

import (
	"context"
	"log"
	"math"
	"strings"
	"unicode/utf8"

	"insight-stack/internal/models"
)

// summaryInputLimit caps the transcript slice sent to the summarizer; long
// transcripts blow past the model's useful input length.
const summaryInputLimit = 1000

// allowedCategories is the set of entity categories kept in reports.
var allowedCategories = map[string]bool{
	models.EntityPerson:  true,
	models.EntityOrg:     true,
	models.EntityPlace:   true,
	models.EntityProduct: true,
}

// Extractor runs the three transcript analyses. Each analysis is independent
// and fail-soft: an error in one is logged and leaves its slot in the bundle
// empty without affecting the others. A nil summarizer or tagger disables
// that analysis entirely.
type Extractor struct {
	scorer     PolarityScorer
	summarizer Summarizer
	tagger     EntityTagger
}

func NewExtractor(scorer PolarityScorer, summarizer Summarizer, tagger EntityTagger) *Extractor {
	return &Extractor{
		scorer:     scorer,
		summarizer: summarizer,
		tagger:     tagger,
	}
}

// Extract analyzes a transcript. An empty or whitespace-only transcript
// yields an empty bundle without invoking any analysis.
func (e *Extractor) Extract(ctx context.Context, transcript string) models.InsightBundle {
	bundle := models.InsightBundle{Entities: []models.Entity{}}

	if strings.TrimSpace(transcript) == "" {
		return bundle
	}

	if e.scorer != nil {
		polarity, err := e.scorer.Polarity(transcript)
		if err != nil {
			log.Printf("Warning: sentiment analysis failed: %v", err)
		} else {
			bundle.Sentiment = &models.Sentiment{
				Label: classifyPolarity(polarity),
				Score: roundScore(polarity),
			}
		}
	}

	if e.summarizer != nil {
		summary, err := e.summarizer.Summarize(ctx, truncateText(transcript, summaryInputLimit))
		if err != nil {
			log.Printf("Warning: summarization failed: %v", err)
		} else {
			bundle.Summary = summary
		}
	}

	if e.tagger != nil {
		entities, err := e.tagger.Tag(ctx, transcript)
		if err != nil {
			log.Printf("Warning: entity extraction failed: %v", err)
		} else {
			bundle.Entities = dedupeEntities(entities)
		}
	}

	return bundle
}

// truncateText cuts s to at most limit bytes without splitting a rune.
func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// classifyPolarity maps a compound polarity score to a label. Scores within
// 0.1 of zero are treated as neutral.
func classifyPolarity(score float64) string {
	switch {
	case score > 0.1:
		return models.SentimentPositive
	case score < -0.1:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func roundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

// dedupeEntities drops entities outside the allowed categories and collapses
// duplicates of the same (text, category) pair, keeping first-seen order.
func dedupeEntities(entities []models.Entity) []models.Entity {
	seen := make(map[models.Entity]bool, len(entities))
	out := make([]models.Entity, 0, len(entities))
	for _, ent := range entities {
		if ent.Text == "" || !allowedCategories[ent.Category] {
			continue
		}
		if seen[ent] {
			continue
		}
		seen[ent] = true
		out = append(out, ent)
	}
	return out
}
