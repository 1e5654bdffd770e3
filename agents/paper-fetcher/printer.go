package paperfetcher

import (
	"fmt"
	"io"
	"strings"

	"insight-stack/internal/models"
)

// maxItemsShown caps each resource list in console output.
const maxItemsShown = 10

// WriteResources renders everything fetched for a paper as a console report.
func WriteResources(w io.Writer, arxivID string, res *models.PaperResources) {
	fmt.Fprintf(w, "\n=== Hugging Face resources for arXiv:%s ===\n", arxivID)

	if res.Paper != nil {
		fmt.Fprintf(w, "\nPaper: %s\n", res.Paper.Title)
		if len(res.Paper.Authors) > 0 {
			fmt.Fprintf(w, "  Authors: %s\n", strings.Join(res.Paper.Authors, ", "))
		}
		if res.Paper.Published != "" {
			fmt.Fprintf(w, "  Published: %s\n", res.Paper.Published)
		}
		fmt.Fprintf(w, "  Link: %s\n", res.Paper.Link)
		if res.Paper.Summary != "" {
			fmt.Fprintf(w, "  Abstract: %s\n", res.Paper.Summary)
		}
	} else {
		fmt.Fprintf(w, "\nPaper: not indexed on the Hub\n")
	}

	fmt.Fprintf(w, "\nModels (%d):\n", len(res.Models))
	for i, m := range res.Models {
		if i == maxItemsShown {
			break
		}
		line := m.ID
		if m.PipelineTag != "" {
			line += " [" + m.PipelineTag + "]"
		}
		fmt.Fprintf(w, "  - %s (downloads: %d, likes: %d)\n", line, m.Downloads, m.Likes)
	}
	writeOverflow(w, len(res.Models))

	fmt.Fprintf(w, "\nDatasets (%d):\n", len(res.Datasets))
	for i, d := range res.Datasets {
		if i == maxItemsShown {
			break
		}
		fmt.Fprintf(w, "  - %s (downloads: %d, likes: %d)\n", d.ID, d.Downloads, d.Likes)
	}
	writeOverflow(w, len(res.Datasets))

	fmt.Fprintf(w, "\nSpaces (%d):\n", len(res.Spaces))
	for i, s := range res.Spaces {
		if i == maxItemsShown {
			break
		}
		line := s.ID
		if s.SDK != "" {
			line += " [" + s.SDK + "]"
		}
		fmt.Fprintf(w, "  - %s (likes: %d)\n", line, s.Likes)
	}
	writeOverflow(w, len(res.Spaces))

	fmt.Fprintf(w, "\nSummary: %d models, %d datasets, %d spaces\n",
		len(res.Models), len(res.Datasets), len(res.Spaces))
}

func writeOverflow(w io.Writer, total int) {
	if extra := total - maxItemsShown; extra > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", extra)
	}
}
