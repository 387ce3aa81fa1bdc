// Package intent matches free-text user utterances against stored task
// descriptions using TF-IDF weighted cosine similarity.
package intent

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches terms of at least two word characters, the same
// convention the reference vectorizer uses. Single-letter words like "I"
// and "a" carry no intent signal and are dropped.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Matcher selects the stored task most similar to a user utterance.
type Matcher struct {
	threshold float64
	sentinel  string
}

// NewMatcher creates a matcher. Tasks scoring at or below threshold are
// rejected and sentinel is returned instead.
func NewMatcher(threshold float64, sentinel string) *Matcher {
	return &Matcher{threshold: threshold, sentinel: sentinel}
}

// removeDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// tokenize lowercases, strips diacritics, and splits text into terms.
func tokenize(text string) []string {
	text = strings.ToLower(removeDiacritics(text))
	return tokenPattern.FindAllString(text, -1)
}

// termCounts returns raw term frequencies for a token list.
func termCounts(tokens []string) map[string]float64 {
	counts := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

// idfWeights computes smoothed inverse document frequencies over all
// documents: ln((1+n)/(1+df)) + 1.
func idfWeights(docs []map[string]float64) map[string]float64 {
	df := make(map[string]float64)
	for _, doc := range docs {
		for term := range doc {
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+count)) + 1
	}
	return idf
}

// vectorize weights term counts by idf and L2-normalizes the result.
func vectorize(counts map[string]float64, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64, len(counts))
	var sumSquares float64
	for term, count := range counts {
		w := count * idf[term]
		vec[term] = w
		sumSquares += w * w
	}

	if sumSquares == 0 {
		return vec
	}
	norm := math.Sqrt(sumSquares)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// dot returns the dot product of two normalized sparse vectors, which for
// L2-normalized vectors equals their cosine similarity.
func dot(a, b map[string]float64) float64 {
	// Iterate the smaller vector.
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, w := range a {
		sum += w * b[term]
	}
	return sum
}

// BestMatch returns the task most similar to query along with its cosine
// similarity score. Ties are broken by input order (first wins). ok is
// false when tasks is empty.
func (m *Matcher) BestMatch(query string, tasks []string) (task string, score float64, ok bool) {
	if len(tasks) == 0 {
		return "", 0, false
	}

	docs := make([]map[string]float64, 0, len(tasks)+1)
	docs = append(docs, termCounts(tokenize(query)))
	for _, t := range tasks {
		docs = append(docs, termCounts(tokenize(t)))
	}

	idf := idfWeights(docs)
	queryVec := vectorize(docs[0], idf)

	bestIndex := 0
	bestScore := math.Inf(-1)
	for i := 1; i < len(docs); i++ {
		s := dot(queryVec, vectorize(docs[i], idf))
		if s > bestScore {
			bestScore = s
			bestIndex = i - 1
		}
	}

	return tasks[bestIndex], bestScore, true
}

// Match returns the best-matching task text verbatim, or the sentinel
// response when no task clears the similarity threshold.
func (m *Matcher) Match(query string, tasks []string) string {
	task, score, ok := m.BestMatch(query, tasks)
	if !ok || score <= m.threshold {
		return m.sentinel
	}
	return task
}
