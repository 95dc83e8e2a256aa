// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package classify

import "github.com/tomtom215/admitlens/internal/models"

// TopicBucket pairs a topic with the keywords that signal it.
type TopicBucket struct {
	Topic    models.Topic `json:"topic" yaml:"topic"`
	Keywords []string     `json:"keywords" yaml:"keywords"`
}

// Lexicon is the complete keyword configuration of a LexiconClassifier.
// Bucket order is the order topics are reported in.
type Lexicon struct {
	Positive []string      `json:"positive" yaml:"positive"`
	Negative []string      `json:"negative" yaml:"negative"`
	Topics   []TopicBucket `json:"topics" yaml:"topics"`
}

// Matching is by substring, so entries avoid fragments that commonly occur
// inside unrelated words ("lab" in "syllabus", "city" in "capacity", "bad" in
// city names such as "Hyderabad").

var defaultPositive = []string{
	"excellent", "amazing", "awesome", "outstanding", "great", "good",
	"best", "helpful", "supportive", "recommend", "love", "fantastic",
	"impressive", "satisfied", "happy", "worth it", "brilliant", "decent",
	"friendly", "wonderful",
}

var defaultNegative = []string{
	"worst", "worse", "terrible", "horrible", "awful", "poor",
	"disappoint", "waste", "avoid", "regret", "useless", "pathetic",
	"overpriced", "toxic", "ragging", "hate", "outdated", "rude",
	"strict", "mismanag",
}

var defaultTopics = []TopicBucket{
	{Topic: models.TopicPlacements, Keywords: []string{
		"placement", "placed", "package", "recruit", "internship", "salary", "ctc", "job",
	}},
	{Topic: models.TopicFaculty, Keywords: []string{
		"faculty", "professor", "teacher", "teaching", "lecturer", "mentor",
	}},
	{Topic: models.TopicInfrastructure, Keywords: []string{
		"infrastructure", "labs", "laboratory", "library", "hostel", "classroom",
		"wifi", "wi-fi", "building", "facilities", "canteen",
	}},
	{Topic: models.TopicCurriculum, Keywords: []string{
		"curriculum", "syllabus", "course", "subject", "elective", "exam", "academic", "semester",
	}},
	{Topic: models.TopicFees, Keywords: []string{
		"fees", "fee structure", "tuition", "scholarship", "expensive", "affordable", "overpriced", "cost",
	}},
	{Topic: models.TopicCampusLife, Keywords: []string{
		"campus", "fest", "club", "culture", "sports", "society", "crowd", "events",
	}},
	{Topic: models.TopicLocation, Keywords: []string{
		"location", "located", "connectivity", "transport", "metro", "commute", "airport", "weather",
	}},
	{Topic: models.TopicAdministration, Keywords: []string{
		"administration", "admin", "management", "attendance", "bureaucra", "office", "rules", "principal", "dean",
	}},
}

// DefaultLexicon returns a copy of the built-in lexicon.
func DefaultLexicon() Lexicon {
	topics := make([]TopicBucket, len(defaultTopics))
	for i, b := range defaultTopics {
		topics[i] = TopicBucket{Topic: b.Topic, Keywords: append([]string(nil), b.Keywords...)}
	}
	return Lexicon{
		Positive: append([]string(nil), defaultPositive...),
		Negative: append([]string(nil), defaultNegative...),
		Topics:   topics,
	}
}
