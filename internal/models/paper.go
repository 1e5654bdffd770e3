package models

// Paper is the Hugging Face Hub metadata record for an arXiv paper.
type Paper struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Summary    string   `json:"summary"`
	Published  string   `json:"published"`
	Link       string   `json:"link"`
	Categories []string `json:"categories"`
}

type HubModel struct {
	ID          string `json:"id"`
	PipelineTag string `json:"pipeline_tag"`
	Downloads   int64  `json:"downloads"`
	Likes       int    `json:"likes"`
}

type HubDataset struct {
	ID        string `json:"id"`
	Downloads int64  `json:"downloads"`
	Likes     int    `json:"likes"`
}

type HubSpace struct {
	ID    string `json:"id"`
	SDK   string `json:"sdk"`
	Likes int    `json:"likes"`
}

// PaperResources aggregates a paper with everything on the Hub that
// references it. Paper is nil when the arXiv id is not indexed.
type PaperResources struct {
	Paper    *Paper       `json:"paper"`
	Models   []HubModel   `json:"models"`
	Datasets []HubDataset `json:"datasets"`
	Spaces   []HubSpace   `json:"spaces"`
}
