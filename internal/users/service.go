// Package users handles registration and credential checks for both
// end users and administrative users. Claim-related behavior lives in
// the claims package; this package only owns identity.
package users

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

// Service registers and authenticates users.
type Service struct {
	store    *store.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates the user service. logger may be nil.
func NewService(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:    st,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// RegisterRequest carries the shared registration input.
type RegisterRequest struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Username  string `validate:"required,min=3"`
	Password  string `validate:"required,min=6"`

	// Claustro applies to end users only.
	Claustro model.Claustro

	// AdminRole and DepartmentID apply to admins only.
	AdminRole    model.AdminRole
	DepartmentID string
}

// RegisterFinalUser creates an end user. Email and username must be
// unique across all users.
func (s *Service) RegisterFinalUser(req RegisterRequest) (*model.User, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	switch req.Claustro {
	case model.ClaustroEstudiante, model.ClaustroDocente, model.ClaustroPAyS:
	default:
		return nil, fmt.Errorf("%w: claustro no válido: %q", model.ErrValidation, req.Claustro)
	}

	u := s.newUser(req)
	u.Kind = model.UserKindFinal
	u.Claustro = req.Claustro
	if err := u.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.store.CreateUser(u); err != nil {
		return nil, err
	}
	s.logger.Info("final user registered", "user", u.ID, "claustro", u.Claustro)
	return u, nil
}

// RegisterAdmin creates an administrative user. A department head must
// name their department; the central secretary is not bound to one.
func (s *Service) RegisterAdmin(req RegisterRequest) (*model.User, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	switch req.AdminRole {
	case model.RoleCentralSecretary:
	case model.RoleDepartmentHead:
		if req.DepartmentID == "" {
			return nil, fmt.Errorf("%w: un jefe de departamento necesita un departamento", model.ErrValidation)
		}
		if _, err := s.store.Department(req.DepartmentID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: rol de administrador no válido: %q", model.ErrValidation, req.AdminRole)
	}

	u := s.newUser(req)
	u.Kind = model.UserKindAdmin
	u.AdminRole = req.AdminRole
	u.DepartmentID = req.DepartmentID
	if err := u.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.store.CreateUser(u); err != nil {
		return nil, err
	}
	s.logger.Info("admin registered", "user", u.ID, "role", u.AdminRole)
	return u, nil
}

// Authenticate checks a username and password pair and returns the
// user. A wrong username and a wrong password produce the same error.
func (s *Service) Authenticate(username, password string) (*model.User, error) {
	u, err := s.store.UserByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("%w: usuario o contraseña incorrectos", model.ErrValidation)
	}
	if !u.CheckPassword(password) {
		return nil, fmt.Errorf("%w: usuario o contraseña incorrectos", model.ErrValidation)
	}
	return u, nil
}

// User loads one user by id.
func (s *Service) User(id string) (*model.User, error) {
	return s.store.User(id)
}

func (s *Service) newUser(req RegisterRequest) *model.User {
	return &model.User{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Username:  strings.TrimSpace(req.Username),
	}
}

func (s *Service) validateRequest(req RegisterRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: campo %s no válido", model.ErrValidation, strings.ToLower(verrs[0].Field()))
	}
	return fmt.Errorf("%w: datos de registro no válidos", model.ErrValidation)
}
