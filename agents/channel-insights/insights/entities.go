package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"insight-stack/internal/models"
)

// EntityTagger extracts named entities from free text. Implementations map
// their native label scheme onto the category constants in internal/models;
// entities they cannot map carry an empty category and are dropped downstream.
type EntityTagger interface {
	Tag(ctx context.Context, text string) ([]models.Entity, error)
}

// HFEntityTagger runs named entity recognition through the Hugging Face
// inference API (a token-classification model such as dslim/bert-base-NER).
type HFEntityTagger struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewHFEntityTagger(endpoint, token string) *HFEntityTagger {
	return &HFEntityTagger{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type nerRequest struct {
	Inputs  string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

type nerResult struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
}

// categoryForGroup translates bert-base-NER group labels to our categories.
var categoryForGroup = map[string]string{
	"PER":  models.EntityPerson,
	"ORG":  models.EntityOrg,
	"LOC":  models.EntityPlace,
	"MISC": models.EntityProduct,
}

func (t *HFEntityTagger) Tag(ctx context.Context, text string) ([]models.Entity, error) {
	reqBody := nerRequest{Inputs: text}
	reqBody.Options.WaitForModel = true

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode NER request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create NER request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NER request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("NER API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nerResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode NER response: %w", err)
	}

	entities := make([]models.Entity, 0, len(results))
	for _, r := range results {
		entities = append(entities, models.Entity{
			Text:     r.Word,
			Category: categoryForGroup[r.EntityGroup],
		})
	}

	return entities, nil
}
