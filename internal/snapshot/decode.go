package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cintel/internal/newsqueue"
)

func decodeSnapshot(data []byte) (Snapshot, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var snap Snapshot
	if err := decoder.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode JSON: %w", err)
	}
	for i := range snap.Companies {
		snap.Companies[i].Name = strings.TrimSpace(snap.Companies[i].Name)
	}
	return snap, nil
}

type rawNewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"published_at"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	CompanyID   string `json:"company_id"`
}

func decodeNewsItems(data []byte) ([]newsqueue.Item, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var raws []rawNewsItem
	if err := decoder.Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	items := make([]newsqueue.Item, 0, len(raws))
	for _, r := range raws {
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		published, err := time.Parse(time.RFC3339, r.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("parse time for %s: %w", r.ID, err)
		}
		items = append(items, newsqueue.Item{
			ID:        r.ID,
			Title:     r.Title,
			Content:   r.Content,
			Date:      published,
			Category:  r.Category,
			Source:    r.Source,
			URL:       r.URL,
			CompanyID: r.CompanyID,
		})
	}
	return items, nil
}
