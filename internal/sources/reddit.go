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

// RedditConfig configures the Reddit search source.
type RedditConfig struct {
	// Enabled registers the source with the fetcher.
	Enabled bool `koanf:"enabled"`

	// BaseURL is the Reddit API root. Default: https://www.reddit.com.
	BaseURL string `koanf:"base_url"`

	// Subreddit restricts the search when set (without the r/ prefix).
	Subreddit string `koanf:"subreddit"`

	// Limit is the page size, 1-100. Default: 25.
	Limit int `koanf:"limit"`

	// UserAgent identifies the client; Reddit rejects generic agents.
	UserAgent string `koanf:"user_agent"`

	// Timeout is the HTTP client timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// Reddit searches posts through Reddit's public JSON search endpoint.
type Reddit struct {
	cfg    RedditConfig
	client *http.Client
}

// NewReddit creates a Reddit source.
func NewReddit(cfg RedditConfig) *Reddit {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Limit <= 0 || cfg.Limit > 100 {
		cfg.Limit = 25
	}
	return &Reddit{cfg: cfg, client: newHTTPClient(cfg.Timeout)}
}

// Name implements fetcher.Source.
func (r *Reddit) Name() string {
	return "reddit"
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Author      string  `json:"author"`
	Flair       string  `json:"link_flair_text"`
	Permalink   string  `json:"permalink"`
}

// Search implements fetcher.Source.
func (r *Reddit) Search(ctx context.Context, query string) ([]models.CommunityPost, error) {
	var listing redditListing
	if err := getJSON(ctx, r.client, r.Name(), r.searchURL(query), r.cfg.UserAgent, &listing); err != nil {
		return nil, err
	}

	posts := make([]models.CommunityPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		p := child.Data
		post := models.CommunityPost{
			ID:           p.ID,
			Source:       r.Name(),
			Title:        p.Title,
			Body:         p.SelfText,
			Score:        p.Score,
			CommentCount: p.NumComments,
			CreatedAt:    time.Unix(int64(p.CreatedUTC), 0).UTC(),
			Flair:        p.Flair,
		}
		if p.Author != "" && p.Author != "[deleted]" {
			post.Author = p.Author
		}
		if p.Permalink != "" {
			post.URL = r.cfg.BaseURL + p.Permalink
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *Reddit) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(r.cfg.Limit))
	params.Set("sort", "relevance")
	params.Set("t", "all")
	params.Set("raw_json", "1")

	if r.cfg.Subreddit != "" {
		params.Set("restrict_sr", "1")
		return fmt.Sprintf("%s/r/%s/search.json?%s", r.cfg.BaseURL, url.PathEscape(r.cfg.Subreddit), params.Encode())
	}
	return fmt.Sprintf("%s/search.json?%s", r.cfg.BaseURL, params.Encode())
}
