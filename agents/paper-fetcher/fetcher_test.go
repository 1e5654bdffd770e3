package paperfetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestFetcher(handler http.Handler) (*Fetcher, *httptest.Server) {
	server := httptest.NewServer(handler)
	return &Fetcher{
		baseURL: server.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}, server
}

func TestCleanArxivID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2306.01116", "2306.01116"},
		{"arxiv:2306.01116", "2306.01116"},
		{"arXiv:2306.01116", "2306.01116"},
		{"  arXiv:2306.01116  ", "2306.01116"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanArxivID(tt.in); got != tt.want {
				t.Errorf("cleanArxivID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFetchAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/papers/2306.01116", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"id": "2306.01116",
			"title": "The RefinedWeb Dataset",
			"summary": "Web data alone is enough.",
			"publishedAt": "2023-06-01T00:00:00.000Z",
			"authors": [{"name": "Alice"}, {"name": "Bob"}]
		}`)
	})
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "arxiv:2306.01116" {
			t.Errorf("model search query = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("model search limit = %q", got)
		}
		fmt.Fprintf(w, `[{"id": "tiiuae/falcon-7b", "pipeline_tag": "text-generation", "downloads": 100, "likes": 5}]`)
	})
	mux.HandleFunc("/datasets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"id": "tiiuae/falcon-refinedweb", "downloads": 42, "likes": 9}]`)
	})
	mux.HandleFunc("/spaces", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[]`)
	})

	fetcher, server := newTestFetcher(mux)
	defer server.Close()

	res, err := fetcher.FetchAll(context.Background(), "arXiv:2306.01116")
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if res.Paper == nil {
		t.Fatal("expected paper metadata")
	}
	if res.Paper.Title != "The RefinedWeb Dataset" {
		t.Errorf("paper title = %q", res.Paper.Title)
	}
	if len(res.Paper.Authors) != 2 || res.Paper.Authors[0] != "Alice" {
		t.Errorf("paper authors = %v", res.Paper.Authors)
	}
	if res.Paper.Link != "https://huggingface.co/papers/2306.01116" {
		t.Errorf("paper link = %q", res.Paper.Link)
	}

	if len(res.Models) != 1 || res.Models[0].ID != "tiiuae/falcon-7b" {
		t.Errorf("models = %v", res.Models)
	}
	if len(res.Datasets) != 1 || res.Datasets[0].Downloads != 42 {
		t.Errorf("datasets = %v", res.Datasets)
	}
	if len(res.Spaces) != 0 {
		t.Errorf("spaces = %v", res.Spaces)
	}
}

func TestFetchPaperTriesPrefixForms(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/papers/", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/papers/arXiv:1234.5678" {
			fmt.Fprintf(w, `{"id": "1234.5678", "title": "Found"}`)
			return
		}
		http.NotFound(w, r)
	})

	fetcher, server := newTestFetcher(mux)
	defer server.Close()

	paper, err := fetcher.FetchPaper(context.Background(), "1234.5678")
	if err != nil {
		t.Fatalf("FetchPaper failed: %v", err)
	}
	if paper == nil || paper.Title != "Found" {
		t.Fatalf("paper = %+v", paper)
	}
	if len(paths) != 3 {
		t.Errorf("expected 3 lookup attempts, got %v", paths)
	}
}

func TestFetchAllPaperNotIndexed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	fetcher, server := newTestFetcher(mux)
	defer server.Close()

	res, err := fetcher.FetchAll(context.Background(), "0000.00000")
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if res.Paper != nil {
		t.Errorf("expected nil paper for unindexed id, got %+v", res.Paper)
	}
	if len(res.Models) != 0 || len(res.Datasets) != 0 || len(res.Spaces) != 0 {
		t.Errorf("expected empty resource lists, got %+v", res)
	}
}

func TestFetchAllEmptyID(t *testing.T) {
	fetcher := NewFetcher()
	if _, err := fetcher.FetchAll(context.Background(), "  arxiv:  "); err == nil {
		t.Error("expected error for empty arXiv id")
	}
}

func TestFetchAllSearchFailureTolerated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/papers/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id": "1111.2222", "title": "Still Here"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	fetcher, server := newTestFetcher(mux)
	defer server.Close()

	res, err := fetcher.FetchAll(context.Background(), "1111.2222")
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if res.Paper == nil {
		t.Error("expected paper despite search failures")
	}
	if len(res.Models) != 0 {
		t.Errorf("expected empty models after failure, got %v", res.Models)
	}
}
