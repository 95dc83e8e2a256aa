// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/admitlens/internal/models"
)

// HackerNewsConfig configures the Hacker News (Algolia) search source.
type HackerNewsConfig struct {
	// Enabled registers the source with the fetcher.
	Enabled bool `koanf:"enabled"`

	// BaseURL is the Algolia API root. Default: https://hn.algolia.com.
	BaseURL string `koanf:"base_url"`

	// Limit is hits per page. Default: 30.
	Limit int `koanf:"limit"`

	// Timeout is the HTTP client timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// HackerNews searches stories and comments through the Algolia HN API.
type HackerNews struct {
	cfg    HackerNewsConfig
	client *http.Client
}

// NewHackerNews creates a Hacker News source.
func NewHackerNews(cfg HackerNewsConfig) *HackerNews {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://hn.algolia.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Limit <= 0 || cfg.Limit > 1000 {
		cfg.Limit = 30
	}
	return &HackerNews{cfg: cfg, client: newHTTPClient(cfg.Timeout)}
}

// Name implements fetcher.Source.
func (h *HackerNews) Name() string {
	return "hackernews"
}

type hnSearchResponse struct {
	Hits []hnHit `json:"hits"`
}

type hnHit struct {
	ObjectID    string  `json:"objectID"`
	Title       *string `json:"title"`
	StoryTitle  *string `json:"story_title"`
	StoryText   *string `json:"story_text"`
	CommentText *string `json:"comment_text"`
	Points      *int    `json:"points"`
	NumComments *int    `json:"num_comments"`
	CreatedAtI  int64   `json:"created_at_i"`
	Author      string  `json:"author"`
}

// Search implements fetcher.Source.
func (h *HackerNews) Search(ctx context.Context, query string) ([]models.CommunityPost, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("tags", "(story,comment)")
	params.Set("hitsPerPage", strconv.Itoa(h.cfg.Limit))
	reqURL := fmt.Sprintf("%s/api/v1/search?%s", h.cfg.BaseURL, params.Encode())

	var resp hnSearchResponse
	if err := getJSON(ctx, h.client, h.Name(), reqURL, "", &resp); err != nil {
		return nil, err
	}

	posts := make([]models.CommunityPost, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		title := deref(hit.Title)
		if title == "" {
			title = deref(hit.StoryTitle)
		}
		body := deref(hit.StoryText)
		if body == "" {
			body = deref(hit.CommentText)
		}
		posts = append(posts, models.CommunityPost{
			ID:           hit.ObjectID,
			Source:       h.Name(),
			Title:        title,
			Body:         body,
			Score:        derefInt(hit.Points),
			CommentCount: derefInt(hit.NumComments),
			CreatedAt:    time.Unix(hit.CreatedAtI, 0).UTC(),
			Author:       hit.Author,
			URL:          "https://news.ycombinator.com/item?id=" + hit.ObjectID,
		})
	}
	return posts, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
