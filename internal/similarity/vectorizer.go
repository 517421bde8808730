// Package similarity ranks open claims by textual similarity to a new
// claim, so users can be warned about near-duplicates before filing.
//
// The vector space is rebuilt from scratch on every query: the corpus
// is the set of currently pending claims, which is small and changes
// constantly, so no index is persisted across calls. Callers on
// latency-sensitive paths must account for that.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/SolBenven/proyecto-final-prog-av/internal/textutil"
)

// Vectorizer builds a TF-IDF vector space over a document set using
// unigrams and bigrams of normalized, stopword-filtered tokens.
type Vectorizer struct {
	maxFeatures int
}

// NewVectorizer creates a vectorizer whose vocabulary is capped at
// maxFeatures terms (most frequent first).
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 1000
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// terms produces the unigram and bigram terms of one document.
func terms(text string) []string {
	tokens := textutil.ContentTokens(text)
	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// FitTransform builds the vocabulary from the documents and returns one
// L2-normalized TF-IDF vector per document. Identical documents map to
// identical vectors, so their cosine similarity is 1. An empty
// vocabulary (all terms filtered out) is an error.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	docTerms := make([][]string, len(docs))
	totalCount := make(map[string]int)
	docFreq := make(map[string]int)
	for i, doc := range docs {
		ts := terms(doc)
		docTerms[i] = ts
		seen := make(map[string]bool, len(ts))
		for _, t := range ts {
			totalCount[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}
	if len(totalCount) == 0 {
		return nil, fmt.Errorf("similarity: empty vocabulary")
	}

	vocab := make([]string, 0, len(totalCount))
	for t := range totalCount {
		vocab = append(vocab, t)
	}
	// Most frequent terms first, ties alphabetical, capped at
	// maxFeatures.
	sort.Slice(vocab, func(i, j int) bool {
		if totalCount[vocab[i]] != totalCount[vocab[j]] {
			return totalCount[vocab[i]] > totalCount[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > v.maxFeatures {
		vocab = vocab[:v.maxFeatures]
	}
	index := make(map[string]int, len(vocab))
	for i, t := range vocab {
		index[t] = i
	}

	// Smoothed inverse document frequency.
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, t := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, ts := range docTerms {
		vec := make([]float64, len(vocab))
		for _, t := range ts {
			if j, ok := index[t]; ok {
				vec[j]++
			}
		}
		var norm float64
		for j := range vec {
			vec[j] *= idf[j]
			norm += vec[j] * vec[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range vec {
				vec[j] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Cosine returns the cosine similarity of two vectors from the same
// space. Vectors are already L2-normalized, so this is the dot product.
func Cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
