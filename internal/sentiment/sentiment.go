// Package sentiment implements a lexicon-based sentiment scorer for feedback
// text. It has no storage or network dependencies so it can be run in
// parallel across texts and tested in isolation.
package sentiment

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/helpnexus/feedback-backend/internal/models"
)

// Result is the outcome of scoring one text. Score is always in [0,1]:
// 0.5 means no signal, values near 1 are strongly positive, values near 0
// strongly negative.
type Result struct {
	Sentiment     models.Sentiment `json:"sentiment"`
	Score         float64          `json:"score"`
	PositiveWords int              `json:"positiveWords"`
	NegativeWords int              `json:"negativeWords"`
	TotalWords    int              `json:"totalWords"`
}

// Analyzer scores free-form text against a fixed lexicon.
type Analyzer struct {
	lexicon Lexicon
}

// New creates an Analyzer with the given lexicon.
func New(lexicon Lexicon) *Analyzer {
	return &Analyzer{lexicon: lexicon}
}

// NewDefault creates an Analyzer with the production lexicon.
func NewDefault() *Analyzer {
	return New(DefaultLexicon())
}

// Analyze scores a single text. It is pure and deterministic: identical
// input always yields an identical Result, and any string input is valid,
// including the empty string.
//
// The label is decided from the raw positive/total ratio before the
// intensity boost is applied, and is deliberately not recomputed afterwards:
// the boost moves the score toward the extreme in the direction of the label
// without ever changing the label itself.
func (a *Analyzer) Analyze(text string) Result {
	var positive, negative int
	for _, word := range tokenize(strings.ToLower(text)) {
		if _, ok := a.lexicon.Positive[word]; ok {
			positive++
		}
		if _, ok := a.lexicon.Negative[word]; ok {
			negative++
		}
	}
	total := positive + negative

	label := models.SentimentNeutral
	score := 0.5
	if total > 0 {
		score = float64(positive) / float64(total)
		if score > 0.6 {
			label = models.SentimentPositive
		} else if score < 0.4 {
			label = models.SentimentNegative
		}
	}

	if isIntense(text) {
		switch label {
		case models.SentimentPositive:
			score = math.Min(1, score+0.1)
		case models.SentimentNegative:
			score = math.Max(0, score-0.1)
		}
	}

	return Result{
		Sentiment:     label,
		Score:         score,
		PositiveWords: positive,
		NegativeWords: negative,
		TotalWords:    total,
	}
}

// AnalyzeBatch scores each text independently; results are returned in
// input order.
func (a *Analyzer) AnalyzeBatch(texts []string) []Result {
	results := make([]Result, len(texts))
	for i, text := range texts {
		results[i] = a.Analyze(text)
	}
	return results
}

// isIntense reports whether the original (non-lowercased) text carries
// intensity markers: more than two exclamation marks, or more than 30% of
// its characters written as uppercase letters.
func isIntense(text string) bool {
	var exclamations, caps int
	for _, r := range text {
		switch {
		case r == '!':
			exclamations++
		case r >= 'A' && r <= 'Z':
			caps++
		}
	}
	length := utf8.RuneCountInString(text)
	return exclamations > 2 || float64(caps) > float64(length)*0.3
}

// tokenize splits lowercased text into whole words. Word characters are
// letters, digits and underscore; everything else is a boundary.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
