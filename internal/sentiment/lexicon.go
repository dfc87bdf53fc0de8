package sentiment

// Lexicon holds the word lists the analyzer matches against. Matching is
// case-insensitive and whole-word, so "goodness" never counts as "good".
type Lexicon struct {
	Positive map[string]struct{}
	Negative map[string]struct{}
}

// NewLexicon builds a Lexicon from plain word slices. Words are expected to
// be lowercase; the analyzer lowercases input text before matching.
func NewLexicon(positive, negative []string) Lexicon {
	lex := Lexicon{
		Positive: make(map[string]struct{}, len(positive)),
		Negative: make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		lex.Positive[w] = struct{}{}
	}
	for _, w := range negative {
		lex.Negative[w] = struct{}{}
	}
	return lex
}

// DefaultLexicon returns the curated word lists used in production.
func DefaultLexicon() Lexicon {
	return NewLexicon(
		[]string{
			"good", "great", "excellent", "amazing", "wonderful", "fantastic", "awesome", "perfect",
			"love", "like", "enjoy", "happy", "satisfied", "pleased", "impressed", "helpful",
			"useful", "effective", "efficient", "fast", "quick", "easy", "simple", "intuitive",
			"beautiful", "nice", "clean", "modern", "smooth", "reliable", "stable", "secure",
		},
		[]string{
			"bad", "terrible", "awful", "horrible", "worst", "disappointing", "frustrating",
			"hate", "dislike", "annoying", "irritating", "confusing", "difficult", "hard",
			"slow", "buggy", "broken", "crash", "error", "problem", "issue", "bug",
			"ugly", "messy", "complicated", "unreliable", "unstable", "insecure", "poor",
		},
	)
}
