// Package analytics produces the aggregate figures behind the
// administration dashboard: claim counts per status with percentages
// and the most frequent words across claim details.
package analytics

import (
	"sort"
	"unicode"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
	"github.com/SolBenven/proyecto-final-prog-av/internal/textutil"
)

// StatusStat is one row of the status breakdown.
type StatusStat struct {
	Status     model.Status `json:"estado"`
	Count      int          `json:"cantidad"`
	Percentage float64      `json:"porcentaje"`
}

// WordCount is one entry of the word frequency ranking.
type WordCount struct {
	Word  string `json:"palabra"`
	Count int    `json:"cantidad"`
}

// Reporter computes dashboard statistics over the claim store.
type Reporter struct {
	store *store.Store
}

// NewReporter creates a reporter backed by the store.
func NewReporter(st *store.Store) *Reporter {
	return &Reporter{store: st}
}

// StatusBreakdown returns one row per lifecycle status in canonical
// order, with counts and percentages over the admin's visible
// departments. departmentIDs follows the claim filter convention: nil
// means every department, an empty slice matches nothing. Percentages
// are zero when there are no claims at all.
func (r *Reporter) StatusBreakdown(departmentIDs []string) ([]StatusStat, error) {
	counts, err := r.store.StatusCounts(departmentIDs)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, c := range counts {
		total += c
	}

	stats := make([]StatusStat, 0, len(model.AllStatuses()))
	for _, st := range model.AllStatuses() {
		row := StatusStat{Status: st, Count: counts[st]}
		if total > 0 {
			row.Percentage = float64(row.Count) / float64(total) * 100
		}
		stats = append(stats, row)
	}
	return stats, nil
}

// WordFrequencies returns the limit most frequent content words across
// the details of the claims in scope. Words are normalized (lowercase,
// accents stripped), stopwords and short or numeric tokens dropped.
// Ties order alphabetically so the ranking is stable.
func (r *Reporter) WordFrequencies(departmentIDs []string, limit int) ([]WordCount, error) {
	claims, err := r.store.Claims(store.ClaimFilter{DepartmentIDs: departmentIDs})
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	counts := make(map[string]int)
	for _, c := range claims {
		for _, tok := range textutil.ContentTokens(c.Detail) {
			if len([]rune(tok)) <= 2 || isNumeric(tok) {
				continue
			}
			counts[tok]++
		}
	}

	words := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
