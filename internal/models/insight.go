package models

import "time"

// Sentiment labels produced by the polarity classifier.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Entity categories kept by the extractor. Everything else is discarded.
const (
	EntityPerson  = "PERSON"
	EntityOrg     = "ORG"
	EntityPlace   = "GPE"
	EntityProduct = "PRODUCT"
)

type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"` // polarity in [-1, 1], rounded to 3 decimals
}

type Entity struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// InsightBundle holds the three independent analysis results for one
// transcript. Each field degrades to its zero value when the corresponding
// analysis failed or its capability was unavailable.
type InsightBundle struct {
	Sentiment *Sentiment `json:"sentiment,omitempty"`
	Summary   string     `json:"summary,omitempty"`
	Entities  []Entity   `json:"entities"`
}

// VideoInsights pairs a video with its extracted insights for reporting.
type VideoInsights struct {
	Video    *Video        `json:"video"`
	Insights InsightBundle `json:"insights"`
}

type DigestReport struct {
	Date     time.Time        `json:"date"`
	Videos   []*VideoInsights `json:"videos"`
	Total    int              `json:"total_processed"`
	Resolved int              `json:"transcripts_resolved"`
}
