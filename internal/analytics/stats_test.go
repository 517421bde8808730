package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

func newTestReporter(t *testing.T) (*Reporter, *store.Store) {
	t.Helper()
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewReporter(st), st
}

func addClaim(t *testing.T, st *store.Store, departmentID string, status model.Status, detail string) {
	t.Helper()
	require.NoError(t, st.Update(func(tx *store.Tx) error {
		return tx.PutClaim(&model.Claim{
			ID:           uuid.NewString(),
			Detail:       detail,
			Status:       status,
			DepartmentID: departmentID,
			CreatorID:    uuid.NewString(),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		})
	}))
}

func TestStatusBreakdown(t *testing.T) {
	r, st := newTestReporter(t)
	dep := uuid.NewString()

	addClaim(t, st, dep, model.StatusPending, "uno")
	addClaim(t, st, dep, model.StatusPending, "dos")
	addClaim(t, st, dep, model.StatusResolved, "tres")
	addClaim(t, st, uuid.NewString(), model.StatusInvalid, "otro departamento")

	stats, err := r.StatusBreakdown([]string{dep})
	require.NoError(t, err)
	require.Len(t, stats, 4)

	byStatus := make(map[model.Status]StatusStat)
	for _, s := range stats {
		byStatus[s.Status] = s
	}
	assert.Equal(t, 2, byStatus[model.StatusPending].Count)
	assert.InDelta(t, 66.67, byStatus[model.StatusPending].Percentage, 0.01)
	assert.Equal(t, 1, byStatus[model.StatusResolved].Count)
	assert.Equal(t, 0, byStatus[model.StatusInProcess].Count)
	assert.Equal(t, 0, byStatus[model.StatusInvalid].Count)
}

func TestStatusBreakdown_Empty(t *testing.T) {
	r, _ := newTestReporter(t)

	stats, err := r.StatusBreakdown(nil)
	require.NoError(t, err)
	require.Len(t, stats, 4)
	for _, s := range stats {
		assert.Equal(t, 0, s.Count)
		assert.Equal(t, 0.0, s.Percentage)
	}
}

func TestWordFrequencies(t *testing.T) {
	r, st := newTestReporter(t)
	dep := uuid.NewString()

	addClaim(t, st, dep, model.StatusPending, "El proyector del aula está roto")
	addClaim(t, st, dep, model.StatusPending, "proyector sin imagen en el aula 12")
	addClaim(t, st, dep, model.StatusResolved, "gotera en el techo")

	words, err := r.WordFrequencies(nil, 10)
	require.NoError(t, err)
	require.NotEmpty(t, words)

	// "proyector" and "aula" appear twice and lead the ranking.
	assert.Equal(t, "aula", words[0].Word)
	assert.Equal(t, 2, words[0].Count)
	assert.Equal(t, "proyector", words[1].Word)
	assert.Equal(t, 2, words[1].Count)

	for _, w := range words {
		assert.Greater(t, len([]rune(w.Word)), 2)
		assert.NotEqual(t, "12", w.Word)
		assert.NotEqual(t, "el", w.Word)
	}
}

func TestWordFrequencies_Limit(t *testing.T) {
	r, st := newTestReporter(t)
	addClaim(t, st, uuid.NewString(), model.StatusPending,
		"proyector pantalla teclado impresora servidor computadora")

	words, err := r.WordFrequencies(nil, 3)
	require.NoError(t, err)
	assert.Len(t, words, 3)
}
