package similarity

import (
	"math"
	"testing"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

func testClaims(details ...string) []*model.Claim {
	claims := make([]*model.Claim, 0, len(details))
	for i, d := range details {
		claims = append(claims, &model.Claim{ID: string(rune('a' + i)), Detail: d})
	}
	return claims
}

func newTestFinder() *Finder {
	return NewFinder(model.SimilarityConfig{Threshold: 0.25, Limit: 5, MaxFeatures: 1000})
}

func TestFind_IdenticalTextScoresHighest(t *testing.T) {
	finder := newTestFinder()
	corpus := testClaims(
		"se rompió el proyector del aula 12",
		"no funciona el aire acondicionado de la biblioteca",
		"la computadora del laboratorio no enciende",
	)

	matches := finder.Find("se rompió el proyector del aula 12", corpus)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	if matches[0].Claim.ID != corpus[0].ID {
		t.Errorf("expected identical claim first, got %s", matches[0].Claim.ID)
	}
	if math.Abs(matches[0].Score-1.0) > 1e-9 {
		t.Errorf("identical text should score 1.0, got %f", matches[0].Score)
	}
}

func TestFind_UnrelatedTextNoMatch(t *testing.T) {
	finder := newTestFinder()
	corpus := testClaims("se rompió el proyector del aula 12")

	matches := finder.Find("pérdida de agua en el baño del segundo piso", corpus)
	if len(matches) != 0 {
		t.Errorf("expected no matches for unrelated text, got %d", len(matches))
	}
}

func TestFind_OrderedByScoreDescending(t *testing.T) {
	finder := newTestFinder()
	corpus := testClaims(
		"el proyector del aula no funciona",
		"no funciona el proyector del aula 12, imposible dar clase",
		"gotera en el techo del pasillo",
	)

	matches := finder.Find("no funciona el proyector del aula 12", corpus)
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not ordered: score[%d]=%f > score[%d]=%f",
				i, matches[i].Score, i-1, matches[i-1].Score)
		}
	}
}

func TestFind_LimitApplied(t *testing.T) {
	finder := NewFinder(model.SimilarityConfig{Threshold: 0.01, Limit: 2, MaxFeatures: 1000})
	corpus := testClaims(
		"proyector roto aula",
		"proyector roto aula doce",
		"proyector aula sin imagen",
		"proyector del aula quemado",
	)

	matches := finder.Find("proyector roto aula", corpus)
	if len(matches) > 2 {
		t.Errorf("expected at most 2 matches, got %d", len(matches))
	}
}

func TestFind_EmptyInputs(t *testing.T) {
	finder := newTestFinder()

	if got := finder.Find("", testClaims("algo")); got != nil {
		t.Errorf("empty query should yield nil, got %v", got)
	}
	if got := finder.Find("   ", testClaims("algo")); got != nil {
		t.Errorf("blank query should yield nil, got %v", got)
	}
	if got := finder.Find("algo", nil); got != nil {
		t.Errorf("empty corpus should yield nil, got %v", got)
	}
}

func TestFind_StopwordOnlyCorpus(t *testing.T) {
	finder := newTestFinder()
	// Every term filtered out leaves an empty vocabulary.
	matches := finder.Find("de la el", testClaims("que de la"))
	if matches != nil {
		t.Errorf("expected nil matches for stopword-only text, got %v", matches)
	}
}

func TestFitTransform_Vectors(t *testing.T) {
	v := NewVectorizer(1000)
	vectors, err := v.FitTransform([]string{
		"proyector roto aula",
		"proyector roto aula",
		"gotera techo pasillo",
	})
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}

	// Identical documents produce identical vectors.
	if math.Abs(Cosine(vectors[0], vectors[1])-1.0) > 1e-9 {
		t.Errorf("identical docs should have cosine 1.0, got %f", Cosine(vectors[0], vectors[1]))
	}
	// Disjoint documents share no terms.
	if got := Cosine(vectors[0], vectors[2]); got != 0 {
		t.Errorf("disjoint docs should have cosine 0, got %f", got)
	}

	// Vectors are L2-normalized.
	var norm float64
	for _, x := range vectors[0] {
		norm += x * x
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("expected unit norm, got %f", math.Sqrt(norm))
	}
}

func TestFitTransform_EmptyVocabulary(t *testing.T) {
	v := NewVectorizer(1000)
	if _, err := v.FitTransform([]string{"de la", "el que"}); err == nil {
		t.Error("expected error for empty vocabulary")
	}
}

func TestFitTransform_MaxFeatures(t *testing.T) {
	v := NewVectorizer(2)
	vectors, err := v.FitTransform([]string{"uno dos tres cuatro cinco"})
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	if len(vectors[0]) != 2 {
		t.Errorf("expected vocabulary capped at 2, got %d", len(vectors[0]))
	}
}
