package similarity

import (
	"sort"
	"strings"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// Match pairs a claim with its similarity score against the query.
type Match struct {
	Claim *model.Claim
	Score float64
}

// Finder ranks a corpus of open claims against a query text.
type Finder struct {
	vectorizer *Vectorizer
	threshold  float64
	limit      int
}

// NewFinder creates a finder with the configured threshold and result
// limit.
func NewFinder(cfg model.SimilarityConfig) *Finder {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = 0.25
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 5
	}
	return &Finder{
		vectorizer: NewVectorizer(cfg.MaxFeatures),
		threshold:  threshold,
		limit:      limit,
	}
}

// Find returns the corpus claims scoring strictly above the threshold,
// ordered by descending score. Equal scores keep corpus order. An
// empty query, an empty corpus, or an unbuildable vector space all
// yield no matches.
func (f *Finder) Find(query string, corpus []*model.Claim) []Match {
	if strings.TrimSpace(query) == "" || len(corpus) == 0 {
		return nil
	}

	docs := make([]string, 0, len(corpus)+1)
	docs = append(docs, query)
	for _, c := range corpus {
		docs = append(docs, c.Detail)
	}

	vectors, err := f.vectorizer.FitTransform(docs)
	if err != nil {
		return nil
	}

	var matches []Match
	queryVec := vectors[0]
	for i, c := range corpus {
		score := Cosine(queryVec, vectors[i+1])
		if score > f.threshold {
			matches = append(matches, Match{Claim: c, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > f.limit {
		matches = matches[:f.limit]
	}
	return matches
}
