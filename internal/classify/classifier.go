// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package classify

import (
	"errors"

	"github.com/tomtom215/admitlens/internal/models"
)

// TextClassifier assigns a sentiment and a non-empty topic set to free text.
// Implementations must be deterministic and safe for concurrent use.
type TextClassifier interface {
	Classify(text string) (models.Sentiment, []models.Topic)
}

// Analysis is the detailed outcome of classifying a text.
type Analysis struct {
	Sentiment    models.Sentiment `json:"sentiment"`
	Topics       []models.Topic   `json:"topics"`
	PositiveHits int              `json:"positive_hits"`
	NegativeHits int              `json:"negative_hits"`
}

// LexiconClassifier classifies text by counting keyword occurrences from
// fixed positive and negative lexicons and by checking topic bucket keywords.
type LexiconClassifier struct {
	positive *automaton
	negative *automaton
	topics   []topicMatcher
}

type topicMatcher struct {
	topic models.Topic
	ac    *automaton
}

// NewLexiconClassifier builds a classifier from the given lexicon.
func NewLexiconClassifier(lex Lexicon) (*LexiconClassifier, error) {
	if len(lex.Positive) == 0 || len(lex.Negative) == 0 {
		return nil, errors.New("lexicon requires positive and negative keywords")
	}

	c := &LexiconClassifier{
		positive: newAutomaton(lex.Positive),
		negative: newAutomaton(lex.Negative),
		topics:   make([]topicMatcher, 0, len(lex.Topics)),
	}
	for _, b := range lex.Topics {
		if b.Topic == "" || b.Topic == models.TopicGeneral {
			return nil, errors.New("topic bucket name must be set and must not be general")
		}
		c.topics = append(c.topics, topicMatcher{topic: b.Topic, ac: newAutomaton(b.Keywords)})
	}
	return c, nil
}

// NewDefault returns a classifier over DefaultLexicon.
func NewDefault() *LexiconClassifier {
	c, err := NewLexiconClassifier(DefaultLexicon())
	if err != nil {
		panic(err) // built-in lexicon is always valid
	}
	return c
}

// Classify implements TextClassifier.
func (c *LexiconClassifier) Classify(text string) (models.Sentiment, []models.Topic) {
	a := c.Analyze(text)
	return a.Sentiment, a.Topics
}

// Analyze classifies text and reports the lexicon hit counts behind the
// sentiment decision.
func (c *LexiconClassifier) Analyze(text string) Analysis {
	pos := c.positive.total(text)
	neg := c.negative.total(text)

	topics := make([]models.Topic, 0, 2)
	for _, tm := range c.topics {
		if tm.ac.contains(text) {
			topics = append(topics, tm.topic)
		}
	}
	if len(topics) == 0 {
		topics = append(topics, models.TopicGeneral)
	}

	return Analysis{
		Sentiment:    decideSentiment(pos, neg),
		Topics:       topics,
		PositiveHits: pos,
		NegativeHits: neg,
	}
}

// decideSentiment applies the checks in a fixed order. Near-equal counts
// land on mixed before the higher side can win.
func decideSentiment(pos, neg int) models.Sentiment {
	switch {
	case pos+neg == 0:
		return models.SentimentNeutral
	case pos > 2*neg:
		return models.SentimentPositive
	case neg > 2*pos:
		return models.SentimentNegative
	case abs(pos-neg) <= 1:
		return models.SentimentMixed
	case pos > neg:
		return models.SentimentPositive
	default:
		return models.SentimentNegative
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ClassifyPosts classifies every post using its title and body.
func ClassifyPosts(c TextClassifier, posts []models.CommunityPost) []models.ClassifiedPost {
	out := make([]models.ClassifiedPost, 0, len(posts))
	for i := range posts {
		sentiment, topics := c.Classify(posts[i].Text())
		if len(topics) == 0 {
			topics = []models.Topic{models.TopicGeneral}
		}
		out = append(out, models.ClassifiedPost{
			CommunityPost: posts[i],
			Sentiment:     sentiment,
			Topics:        topics,
		})
	}
	return out
}
