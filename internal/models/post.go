// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package models

import "time"

// Sentiment is the polarity label assigned to a post or topic.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// String returns the label.
func (s Sentiment) String() string {
	return string(s)
}

// Topic names a discussion bucket.
type Topic string

const (
	TopicPlacements     Topic = "placements"
	TopicFaculty        Topic = "faculty"
	TopicInfrastructure Topic = "infrastructure"
	TopicCurriculum     Topic = "curriculum"
	TopicFees           Topic = "fees"
	TopicCampusLife     Topic = "campus_life"
	TopicLocation       Topic = "location"
	TopicAdministration Topic = "administration"

	// TopicGeneral tags posts that match no other bucket.
	TopicGeneral Topic = "general"
)

// CommunityPost is a normalized post from a community source. Posts are
// ephemeral: fetched, classified and discarded after aggregation.
type CommunityPost struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Title        string    `json:"title"`
	Body         string    `json:"body,omitempty"`
	Score        int       `json:"score"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	Author       string    `json:"author,omitempty"`
	Flair        string    `json:"flair,omitempty"`
	URL          string    `json:"url,omitempty"`
}

// Text returns the title concatenated with the body when present.
func (p *CommunityPost) Text() string {
	if p.Body == "" {
		return p.Title
	}
	return p.Title + " " + p.Body
}

// ClassifiedPost is a post with its derived sentiment and topics.
// Topics is never empty.
type ClassifiedPost struct {
	CommunityPost
	Sentiment Sentiment `json:"sentiment"`
	Topics    []Topic   `json:"topics"`
}
