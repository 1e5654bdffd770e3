package paperfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"insight-stack/internal/models"
)

const defaultBaseURL = "https://huggingface.co/api"

// searchLimit caps each Hub resource search.
const searchLimit = 50

// Fetcher queries the Hugging Face Hub API for a paper and the models,
// datasets and Spaces that reference it.
type Fetcher struct {
	baseURL string
	client  *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// cleanArxivID strips an optional arxiv:/arXiv: prefix and whitespace.
func cleanArxivID(raw string) string {
	id := strings.TrimSpace(raw)
	lower := strings.ToLower(id)
	if strings.HasPrefix(lower, "arxiv:") {
		id = id[len("arxiv:"):]
	}
	return strings.TrimSpace(id)
}

// FetchAll gathers everything the Hub knows about an arXiv paper. Individual
// lookups degrade independently: a missing paper record or a failed search
// leaves its slot empty rather than failing the whole call.
func (f *Fetcher) FetchAll(ctx context.Context, arxivID string) (*models.PaperResources, error) {
	id := cleanArxivID(arxivID)
	if id == "" {
		return nil, fmt.Errorf("empty arXiv id")
	}

	resources := &models.PaperResources{
		Models:   []models.HubModel{},
		Datasets: []models.HubDataset{},
		Spaces:   []models.HubSpace{},
	}

	paper, err := f.FetchPaper(ctx, id)
	if err != nil {
		log.Printf("Warning: failed to fetch paper metadata for %s: %v", id, err)
	} else {
		resources.Paper = paper
	}

	if err := f.search(ctx, "models", id, &resources.Models); err != nil {
		log.Printf("Warning: model search failed for %s: %v", id, err)
	}
	if err := f.search(ctx, "datasets", id, &resources.Datasets); err != nil {
		log.Printf("Warning: dataset search failed for %s: %v", id, err)
	}
	if err := f.search(ctx, "spaces", id, &resources.Spaces); err != nil {
		log.Printf("Warning: space search failed for %s: %v", id, err)
	}

	return resources, nil
}

// FetchPaper looks up the paper record, trying the plain id and both prefix
// spellings the papers endpoint accepts. A 404 on every form means the paper
// is simply not indexed and yields nil without an error.
func (f *Fetcher) FetchPaper(ctx context.Context, id string) (*models.Paper, error) {
	var lastErr error
	for _, form := range []string{id, "arxiv:" + id, "arXiv:" + id} {
		paper, err := f.fetchPaperForm(ctx, form)
		if err != nil {
			lastErr = err
			continue
		}
		if paper != nil {
			return paper, nil
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetchPaperForm(ctx context.Context, form string) (*models.Paper, error) {
	endpoint := fmt.Sprintf("%s/papers/%s", f.baseURL, url.PathEscape(form))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("papers endpoint returned status %d", resp.StatusCode)
	}

	var raw struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Summary     string `json:"summary"`
		PublishedAt string `json:"publishedAt"`
		Authors     []struct {
			Name string `json:"name"`
		} `json:"authors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode paper response: %w", err)
	}

	paper := &models.Paper{
		ID:        raw.ID,
		Title:     raw.Title,
		Summary:   raw.Summary,
		Published: raw.PublishedAt,
		Link:      "https://huggingface.co/papers/" + raw.ID,
	}
	for _, a := range raw.Authors {
		paper.Authors = append(paper.Authors, a.Name)
	}
	return paper, nil
}

// search queries one Hub resource listing for items tagged with the paper.
// out must be a pointer to a slice of the matching model type.
func (f *Fetcher) search(ctx context.Context, resource, id string, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s?search=%s&limit=%d",
		f.baseURL, resource, url.QueryEscape("arxiv:"+id), searchLimit)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s endpoint returned status %d", resource, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", resource, err)
	}
	return nil
}
