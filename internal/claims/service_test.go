package claims

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final-prog-av/internal/classify"
	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/similarity"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

// fakeClock hands out strictly increasing timestamps so time-ordered
// keys never collide inside one test.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

type testEngine struct {
	svc   *Service
	store *store.Store
	deps  map[string]*model.Department
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	deps := make(map[string]*model.Department)
	specs := []struct {
		name    string
		central bool
	}{
		{"secretario_tecnico", true},
		{"secretario_informatico", false},
		{"maestranza", false},
	}
	for _, spec := range specs {
		d := &model.Department{
			ID:               uuid.NewString(),
			Name:             spec.name,
			DisplayName:      spec.name,
			CentralAuthority: spec.central,
			CreatedAt:        time.Now(),
		}
		require.NoError(t, st.CreateDepartment(d))
		deps[spec.name] = d
	}

	dir := store.NewDirectory(st)
	router := classify.NewRouter(classify.NewKeywordProvider(), dir, nil, nil)
	finder := similarity.NewFinder(model.SimilarityConfig{Threshold: 0.25, Limit: 5, MaxFeatures: 1000})
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}

	return &testEngine{
		svc:   NewService(st, dir, router, finder, clock, nil),
		store: st,
		deps:  deps,
	}
}

func (e *testEngine) mustCreate(t *testing.T, creatorID, detail string) *model.Claim {
	t.Helper()
	c, err := e.svc.CreateClaim(context.Background(), CreateRequest{CreatorID: creatorID, Detail: detail})
	require.NoError(t, err)
	return c
}

func TestCreateClaim_KeywordRouting(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		detail     string
		department string
	}{
		{"No funciona el wifi del laboratorio de computadoras", "secretario_informatico"},
		{"Se rompió la canilla del baño del primer piso", "maestranza"},
		{"Necesito un certificado de alumno regular, el trámite no avanza", "secretario_tecnico"},
	}
	for _, tt := range tests {
		c, err := e.svc.CreateClaim(ctx, CreateRequest{CreatorID: uuid.NewString(), Detail: tt.detail})
		require.NoError(t, err)
		assert.Equal(t, e.deps[tt.department].ID, c.DepartmentID, "detail %q", tt.detail)
		assert.Equal(t, model.StatusPending, c.Status)
		assert.False(t, c.CreatedAt.IsZero())
	}
}

func TestCreateClaim_FallbackToCentralAuthority(t *testing.T) {
	e := newTestEngine(t)

	c := e.mustCreate(t, uuid.NewString(), "texto totalmente ajeno a cualquier categoría conocida")
	assert.Equal(t, e.deps["secretario_tecnico"].ID, c.DepartmentID)
}

func TestCreateClaim_EmptyDetail(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.svc.CreateClaim(context.Background(), CreateRequest{CreatorID: uuid.NewString(), Detail: "   "})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCreateClaim_ExplicitDepartment(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// Explicit routing bypasses classification even when keywords point
	// elsewhere.
	c, err := e.svc.CreateClaim(ctx, CreateRequest{
		CreatorID:    uuid.NewString(),
		Detail:       "no funciona el wifi",
		DepartmentID: e.deps["maestranza"].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, e.deps["maestranza"].ID, c.DepartmentID)

	_, err = e.svc.CreateClaim(ctx, CreateRequest{
		CreatorID:    uuid.NewString(),
		Detail:       "lo que sea",
		DepartmentID: "departamento-inexistente",
	})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestTransition_AuditTrailAndFanout(t *testing.T) {
	e := newTestEngine(t)
	creator := uuid.NewString()
	adherent1, adherent2 := uuid.NewString(), uuid.NewString()
	admin := uuid.NewString()

	c := e.mustCreate(t, creator, "Se quemó el proyector del aula 7")
	require.NoError(t, e.svc.Subscribe(c.ID, adherent1))
	require.NoError(t, e.svc.Subscribe(c.ID, adherent2))

	rec, err := e.svc.Transition(c.ID, model.StatusInProcess, admin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, rec.From)
	assert.Equal(t, model.StatusInProcess, rec.To)
	assert.Equal(t, admin, rec.ActorID)

	// Creator and both adherents get exactly one notification each.
	for _, userID := range []string{creator, adherent1, adherent2} {
		count, err := e.svc.UnreadCount(userID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	}

	// Second transition extends the trail in order and notifies again.
	_, err = e.svc.Transition(c.ID, model.StatusResolved, admin)
	require.NoError(t, err)

	history, err := e.svc.History(c.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.StatusInProcess, history[0].To)
	assert.Equal(t, model.StatusResolved, history[1].To)
	assert.Equal(t, history[0].To, history[1].From)

	count, err := e.svc.UnreadCount(creator)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTransition_SameStatusRejected(t *testing.T) {
	e := newTestEngine(t)
	c := e.mustCreate(t, uuid.NewString(), "gotera en el techo del aula")

	_, err := e.svc.Transition(c.ID, model.StatusPending, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrValidation)

	// Nothing was recorded.
	history, err := e.svc.History(c.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTransition_InvalidStatus(t *testing.T) {
	e := newTestEngine(t)
	c := e.mustCreate(t, uuid.NewString(), "gotera en el techo")

	_, err := e.svc.Transition(c.ID, model.Status("Cerrado"), uuid.NewString())
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestTransition_UnknownClaim(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.svc.Transition("inexistente", model.StatusResolved, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTransition_ReopenResolvedClaim(t *testing.T) {
	e := newTestEngine(t)
	admin := uuid.NewString()
	c := e.mustCreate(t, uuid.NewString(), "no anda la impresora de la biblioteca")

	_, err := e.svc.Transition(c.ID, model.StatusResolved, admin)
	require.NoError(t, err)

	// Resolved is not terminal.
	_, err = e.svc.Transition(c.ID, model.StatusPending, admin)
	require.NoError(t, err)

	_, err = e.svc.Transition(c.ID, model.StatusInvalid, admin)
	require.NoError(t, err)

	// Invalid is not terminal either.
	_, err = e.svc.Transition(c.ID, model.StatusInProcess, admin)
	require.NoError(t, err)

	got, err := e.svc.Claim(c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProcess, got.Status)
}

func TestTransition_LateSubscriberMissesEarlierChanges(t *testing.T) {
	e := newTestEngine(t)
	late := uuid.NewString()
	c := e.mustCreate(t, uuid.NewString(), "se rompió una silla del aula magna")

	_, err := e.svc.Transition(c.ID, model.StatusInProcess, uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, e.svc.Subscribe(c.ID, late))
	count, err := e.svc.UnreadCount(late)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = e.svc.Transition(c.ID, model.StatusResolved, uuid.NewString())
	require.NoError(t, err)

	count, err = e.svc.UnreadCount(late)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubscribe_Rules(t *testing.T) {
	e := newTestEngine(t)
	creator := uuid.NewString()
	other := uuid.NewString()
	c := e.mustCreate(t, creator, "pérdida de agua en el baño")

	// Creators cannot adhere to their own claim.
	err := e.svc.Subscribe(c.ID, creator)
	assert.ErrorIs(t, err, model.ErrValidation)

	require.NoError(t, e.svc.Subscribe(c.ID, other))

	// Duplicate adherence is a conflict.
	err = e.svc.Subscribe(c.ID, other)
	assert.ErrorIs(t, err, model.ErrConflict)

	// Unknown claim.
	err = e.svc.Subscribe("inexistente", other)
	assert.ErrorIs(t, err, model.ErrNotFound)

	ok, err := e.svc.IsSubscribed(c.ID, other)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnsubscribe_StopsNotifications(t *testing.T) {
	e := newTestEngine(t)
	adherent := uuid.NewString()
	c := e.mustCreate(t, uuid.NewString(), "la puerta del laboratorio no cierra")

	require.NoError(t, e.svc.Subscribe(c.ID, adherent))
	_, err := e.svc.Transition(c.ID, model.StatusInProcess, uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, e.svc.Unsubscribe(c.ID, adherent))

	// Not adhered anymore: removing again is a not-found error.
	err = e.svc.Unsubscribe(c.ID, adherent)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = e.svc.Transition(c.ID, model.StatusResolved, uuid.NewString())
	require.NoError(t, err)

	// Only the notification from before unsubscribing remains.
	count, err := e.svc.UnreadCount(adherent)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTransfer(t *testing.T) {
	e := newTestEngine(t)
	actor := uuid.NewString()
	c := e.mustCreate(t, uuid.NewString(), "no funciona el wifi del laboratorio")
	require.Equal(t, e.deps["secretario_informatico"].ID, c.DepartmentID)

	rec, err := e.svc.Transfer(c.ID, e.deps["maestranza"].ID, actor, "  corresponde a mantenimiento  ")
	require.NoError(t, err)
	assert.Equal(t, e.deps["secretario_informatico"].ID, rec.FromDepartmentID)
	assert.Equal(t, e.deps["maestranza"].ID, rec.ToDepartmentID)
	assert.Equal(t, "corresponde a mantenimiento", rec.Reason)

	got, err := e.svc.Claim(c.ID)
	require.NoError(t, err)
	assert.Equal(t, e.deps["maestranza"].ID, got.DepartmentID)
	// Transfers never touch the lifecycle status.
	assert.Equal(t, model.StatusPending, got.Status)

	// Transfer to the owning department is rejected.
	_, err = e.svc.Transfer(c.ID, e.deps["maestranza"].ID, actor, "")
	assert.ErrorIs(t, err, model.ErrValidation)

	// Unknown destination.
	_, err = e.svc.Transfer(c.ID, "inexistente", actor, "")
	assert.ErrorIs(t, err, model.ErrNotFound)

	transfers, err := e.svc.TransferHistory(c.ID)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, rec.ID, transfers[0].ID)
}

func TestMarkRead(t *testing.T) {
	e := newTestEngine(t)
	creator := uuid.NewString()
	c := e.mustCreate(t, creator, "humedad en la pared del pasillo")

	_, err := e.svc.Transition(c.ID, model.StatusInProcess, uuid.NewString())
	require.NoError(t, err)

	unread, err := e.svc.UnreadNotifications(creator)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	notifID := unread[0].ID

	// Only the recipient may mark it.
	err = e.svc.MarkRead(notifID, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	require.NoError(t, e.svc.MarkRead(notifID, creator))

	n, err := e.store.Notification(notifID)
	require.NoError(t, err)
	require.True(t, n.Read())
	firstReadAt := *n.ReadAt

	// Marking again keeps the original timestamp.
	require.NoError(t, e.svc.MarkRead(notifID, creator))
	n, err = e.store.Notification(notifID)
	require.NoError(t, err)
	assert.Equal(t, firstReadAt, *n.ReadAt)
}

func TestMarkAllRead(t *testing.T) {
	e := newTestEngine(t)
	creator := uuid.NewString()
	c := e.mustCreate(t, creator, "se cortó la luz del segundo piso")

	_, err := e.svc.Transition(c.ID, model.StatusInProcess, uuid.NewString())
	require.NoError(t, err)
	_, err = e.svc.Transition(c.ID, model.StatusResolved, uuid.NewString())
	require.NoError(t, err)

	marked, err := e.svc.MarkAllRead(creator)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	count, err := e.svc.UnreadCount(creator)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// No unread notifications is not an error.
	marked, err = e.svc.MarkAllRead(creator)
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}

func TestFindSimilar(t *testing.T) {
	e := newTestEngine(t)
	detail := "Se rompió el aire acondicionado de la biblioteca"

	target := e.mustCreate(t, uuid.NewString(), detail)
	e.mustCreate(t, uuid.NewString(), "no funciona el wifi del laboratorio")

	matches, err := e.svc.FindSimilar(detail, "")
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, target.ID, matches[0].Claim.ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestFindSimilar_OnlyPendingClaims(t *testing.T) {
	e := newTestEngine(t)
	detail := "gotera enorme en el techo del gimnasio"

	c := e.mustCreate(t, uuid.NewString(), detail)
	_, err := e.svc.Transition(c.ID, model.StatusResolved, uuid.NewString())
	require.NoError(t, err)

	matches, err := e.svc.FindSimilar(detail, "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAdminPermissions(t *testing.T) {
	e := newTestEngine(t)

	head := &model.User{
		ID:           uuid.NewString(),
		Kind:         model.UserKindAdmin,
		AdminRole:    model.RoleDepartmentHead,
		DepartmentID: e.deps["maestranza"].ID,
	}
	secretary := &model.User{
		ID:        uuid.NewString(),
		Kind:      model.UserKindAdmin,
		AdminRole: model.RoleCentralSecretary,
	}

	// Claim owned by informatics.
	c := e.mustCreate(t, uuid.NewString(), "no funciona el proyector del laboratorio de computadoras")
	require.Equal(t, e.deps["secretario_informatico"].ID, c.DepartmentID)

	// A head of another department cannot act on it.
	_, err := e.svc.AdminTransition(head, c.ID, model.StatusInProcess)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	// The central secretary can.
	_, err = e.svc.AdminTransition(secretary, c.ID, model.StatusInProcess)
	require.NoError(t, err)

	// Only the central secretary transfers.
	_, err = e.svc.AdminTransfer(head, c.ID, e.deps["maestranza"].ID, "")
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	_, err = e.svc.AdminTransfer(secretary, c.ID, e.deps["maestranza"].ID, "le corresponde")
	require.NoError(t, err)

	// After the transfer the department head may manage it.
	_, err = e.svc.AdminTransition(head, c.ID, model.StatusResolved)
	require.NoError(t, err)
}

func TestAdminClaims_Visibility(t *testing.T) {
	e := newTestEngine(t)

	head := &model.User{
		ID:           uuid.NewString(),
		Kind:         model.UserKindAdmin,
		AdminRole:    model.RoleDepartmentHead,
		DepartmentID: e.deps["maestranza"].ID,
	}
	secretary := &model.User{
		ID:        uuid.NewString(),
		Kind:      model.UserKindAdmin,
		AdminRole: model.RoleCentralSecretary,
	}

	e.mustCreate(t, uuid.NewString(), "baño sin agua en planta baja")          // maestranza
	e.mustCreate(t, uuid.NewString(), "el servidor de correo está caído")      // informatics
	e.mustCreate(t, uuid.NewString(), "trámite de título demorado meses")      // central

	all, err := e.svc.AdminClaims(secretary, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := e.svc.AdminClaims(head, "")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, e.deps["maestranza"].ID, own[0].DepartmentID)

	// A head cannot peek into another department.
	_, err = e.svc.AdminClaims(head, e.deps["secretario_informatico"].ID)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	// The secretary can narrow to any department.
	one, err := e.svc.AdminClaims(secretary, e.deps["maestranza"].ID)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestHistory_UnknownClaim(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.svc.History("inexistente")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStatusCounts(t *testing.T) {
	e := newTestEngine(t)
	secretary := &model.User{
		ID:        uuid.NewString(),
		Kind:      model.UserKindAdmin,
		AdminRole: model.RoleCentralSecretary,
	}

	c := e.mustCreate(t, uuid.NewString(), "canilla rota en el baño")
	e.mustCreate(t, uuid.NewString(), "sin internet en el aula 3")
	_, err := e.svc.Transition(c.ID, model.StatusResolved, uuid.NewString())
	require.NoError(t, err)

	counts, err := e.svc.StatusCounts(secretary)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[model.StatusPending])
	assert.Equal(t, 1, counts[model.StatusResolved])
	assert.Equal(t, 0, counts[model.StatusInProcess])
	assert.Equal(t, 0, counts[model.StatusInvalid])
}
