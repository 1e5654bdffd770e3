package insights

import (
	"github.com/jonreiter/govader"
)

// PolarityScorer produces a lexicon-derived polarity score in [-1, 1].
type PolarityScorer interface {
	Polarity(text string) (float64, error)
}

// VaderScorer scores text with the VADER sentiment lexicon. It is local and
// deterministic, so there is no capability flag to manage.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

func (s *VaderScorer) Polarity(text string) (float64, error) {
	scores := s.analyzer.PolarityScores(text)
	return scores.Compound, nil
}
