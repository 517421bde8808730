// Package claims implements the claim routing and lifecycle engine:
// creation with automatic department classification, the status
// lifecycle with its immutable audit trail, notification fan-out,
// adherent subscriptions and department transfers.
//
// Every multi-entity write runs inside one store transaction, so a
// failed step leaves no partial state behind. Authorization is the
// caller's concern; the Admin* helpers wrap the core operations with
// the role checks the administration panel uses.
package claims

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/SolBenven/proyecto-final-prog-av/internal/classify"
	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/similarity"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

// Clock supplies the current timestamp for every persisted field.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock Clock used in production.
func SystemClock() Clock { return systemClock{} }

// Service is the claim engine. All state changes to claims flow
// through it.
type Service struct {
	store     *store.Store
	directory *store.Directory
	router    *classify.Router
	finder    *similarity.Finder
	clock     Clock
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewService wires the engine. clock may be nil for the system clock
// and logger may be nil to disable logging.
func NewService(st *store.Store, dir *store.Directory, router *classify.Router, finder *similarity.Finder, clock Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:     st,
		directory: dir,
		router:    router,
		finder:    finder,
		clock:     clock,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// CreateRequest carries the input for filing a new claim.
type CreateRequest struct {
	// CreatorID is the filing end user.
	CreatorID string `validate:"required"`

	// Detail is the free-text complaint. Required.
	Detail string `validate:"required"`

	// DepartmentID routes the claim explicitly, bypassing
	// classification. Used by bulk/seed loading.
	DepartmentID string

	// ImagePath is an opaque reference to an already-stored image.
	ImagePath string
}

// CreateClaim files a new claim. Without an explicit department the
// detail text is classified; classification failures route to the
// central authority. The claim starts in Pendiente.
func (s *Service) CreateClaim(ctx context.Context, req CreateRequest) (*model.Claim, error) {
	req.Detail = strings.TrimSpace(req.Detail)
	if err := s.validate.Struct(req); err != nil {
		if req.Detail == "" {
			return nil, fmt.Errorf("%w: el detalle del reclamo no puede estar vacío", model.ErrValidation)
		}
		return nil, fmt.Errorf("%w: falta el usuario creador", model.ErrValidation)
	}

	departmentID, err := s.router.Resolve(ctx, req.Detail, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	claim := &model.Claim{
		ID:           uuid.NewString(),
		Detail:       req.Detail,
		Status:       model.StatusPending,
		ImagePath:    req.ImagePath,
		DepartmentID: departmentID,
		CreatorID:    req.CreatorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.store.Update(func(tx *store.Tx) error {
		return tx.PutClaim(claim)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("claim created", "claim", claim.ID, "department", departmentID)
	return claim, nil
}

// Claim loads one claim.
func (s *Service) Claim(id string) (*model.Claim, error) {
	return s.store.Claim(id)
}

// ClaimsByCreator lists the claims a user filed, newest first.
func (s *Service) ClaimsByCreator(userID string) ([]*model.Claim, error) {
	return s.store.Claims(store.ClaimFilter{CreatorID: userID})
}

// SubscribedClaims lists the claims a user adheres to.
func (s *Service) SubscribedClaims(userID string) ([]*model.Claim, error) {
	return s.store.SubscribedClaims(userID)
}

// FindSimilar ranks currently pending claims by similarity to the
// query text, optionally restricted to one department. Used to warn
// about near-duplicates before a claim is filed.
func (s *Service) FindSimilar(query, departmentID string) ([]similarity.Match, error) {
	corpus, err := s.store.PendingClaims(departmentID)
	if err != nil {
		return nil, err
	}
	return s.finder.Find(query, corpus), nil
}

// History returns a claim's status audit trail in chronological order,
// after checking the claim exists.
func (s *Service) History(claimID string) ([]*model.StatusChange, error) {
	if _, err := s.store.Claim(claimID); err != nil {
		return nil, err
	}
	return s.store.StatusChanges(claimID)
}

// wrapNotFound keeps store-level not-found messages while guaranteeing
// the sentinel is present for callers.
func wrapNotFound(err error, msg string) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: %s", model.ErrNotFound, msg)
	}
	return err
}
