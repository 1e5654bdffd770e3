package paperfetcher

import (
	"fmt"
	"strings"
	"testing"

	"insight-stack/internal/models"
)

func TestWriteResources(t *testing.T) {
	res := &models.PaperResources{
		Paper: &models.Paper{
			ID:        "2306.01116",
			Title:     "The RefinedWeb Dataset",
			Authors:   []string{"Alice", "Bob"},
			Published: "2023-06-01",
			Link:      "https://huggingface.co/papers/2306.01116",
			Summary:   "Web data alone is enough.",
		},
		Models: []models.HubModel{
			{ID: "tiiuae/falcon-7b", PipelineTag: "text-generation", Downloads: 100, Likes: 5},
		},
		Datasets: []models.HubDataset{},
		Spaces: []models.HubSpace{
			{ID: "demo/falcon-chat", SDK: "gradio", Likes: 3},
		},
	}

	var buf strings.Builder
	WriteResources(&buf, "2306.01116", res)
	out := buf.String()

	for _, want := range []string{
		"arXiv:2306.01116",
		"Paper: The RefinedWeb Dataset",
		"Authors: Alice, Bob",
		"tiiuae/falcon-7b [text-generation] (downloads: 100, likes: 5)",
		"Datasets (0):",
		"demo/falcon-chat [gradio] (likes: 3)",
		"Summary: 1 models, 0 datasets, 1 spaces",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestWriteResourcesMissingPaperAndOverflow(t *testing.T) {
	res := &models.PaperResources{
		Datasets: []models.HubDataset{},
		Spaces:   []models.HubSpace{},
	}
	for i := 0; i < 13; i++ {
		res.Models = append(res.Models, models.HubModel{ID: fmt.Sprintf("org/model-%d", i)})
	}

	var buf strings.Builder
	WriteResources(&buf, "0000.00000", res)
	out := buf.String()

	if !strings.Contains(out, "Paper: not indexed on the Hub") {
		t.Errorf("missing not-indexed line\n%s", out)
	}
	if !strings.Contains(out, "org/model-9") {
		t.Error("expected tenth model to be listed")
	}
	if strings.Contains(out, "org/model-10") {
		t.Error("expected models beyond the tenth to be omitted")
	}
	if !strings.Contains(out, "... and 3 more") {
		t.Errorf("missing overflow line\n%s", out)
	}
}
