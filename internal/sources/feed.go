// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tomtom215/admitlens/internal/fetcher"
	"github.com/tomtom215/admitlens/internal/models"
)

// QueryPlaceholder is replaced by the escaped search query in a feed URL.
const QueryPlaceholder = "{query}"

// FeedConfig configures an RSS or Atom search feed, such as a forum's
// search-results feed.
type FeedConfig struct {
	// Name labels posts from this feed.
	Name string `koanf:"name"`

	// URLTemplate must contain {query}.
	URLTemplate string `koanf:"url_template"`

	// Timeout is the HTTP client timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// Feed searches a site through a query-parameterized RSS or Atom feed.
type Feed struct {
	cfg    FeedConfig
	client *http.Client
}

// NewFeed creates a feed source.
func NewFeed(cfg FeedConfig) (*Feed, error) {
	if cfg.Name == "" {
		return nil, errors.New("feed name is required")
	}
	if !strings.Contains(cfg.URLTemplate, QueryPlaceholder) {
		return nil, fmt.Errorf("feed %s url_template must contain %s", cfg.Name, QueryPlaceholder)
	}
	return &Feed{cfg: cfg, client: newHTTPClient(cfg.Timeout)}, nil
}

// Name implements fetcher.Source.
func (f *Feed) Name() string {
	return f.cfg.Name
}

// Search implements fetcher.Source.
func (f *Feed) Search(ctx context.Context, query string) ([]models.CommunityPost, error) {
	reqURL := strings.ReplaceAll(f.cfg.URLTemplate, QueryPlaceholder, url.QueryEscape(query))

	body, err := get(ctx, f.client, f.Name(), reqURL, "")
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fetcher.NewSourceError(f.Name(), fetcher.KindDecode, fmt.Errorf("parse feed: %w", err))
	}

	posts := make([]models.CommunityPost, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		posts = append(posts, f.toPost(item))
	}
	return posts, nil
}

func (f *Feed) toPost(item *gofeed.Item) models.CommunityPost {
	id := item.GUID
	if id == "" {
		id = item.Link
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}

	var created time.Time
	switch {
	case item.PublishedParsed != nil:
		created = item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		created = item.UpdatedParsed.UTC()
	}

	var author string
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		author = item.Authors[0].Name
	}

	var flair string
	if len(item.Categories) > 0 {
		flair = item.Categories[0]
	}

	return models.CommunityPost{
		ID:        id,
		Source:    f.Name(),
		Title:     item.Title,
		Body:      body,
		CreatedAt: created,
		Author:    author,
		Flair:     flair,
		URL:       item.Link,
	}
}
