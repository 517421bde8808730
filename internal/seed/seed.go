// Package seed loads initial data from a YAML file: the department
// set, user accounts and an optional batch of claims. Claim creation
// runs through the normal engine path, so seeded claims are classified
// and routed exactly like user-filed ones.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/SolBenven/proyecto-final-prog-av/internal/claims"
	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
	"github.com/SolBenven/proyecto-final-prog-av/internal/users"
	"github.com/SolBenven/proyecto-final-prog-av/internal/worker"
)

// File is the YAML seed document.
type File struct {
	Departments []DepartmentSpec `yaml:"departamentos"`
	Users       []UserSpec       `yaml:"usuarios"`
	Claims      []ClaimSpec      `yaml:"reclamos"`
}

// DepartmentSpec declares one department.
type DepartmentSpec struct {
	Name             string `yaml:"nombre"`
	DisplayName      string `yaml:"nombre_mostrar"`
	CentralAuthority bool   `yaml:"es_secretaria_tecnica"`
}

// UserSpec declares one user account of either kind.
type UserSpec struct {
	Kind       string `yaml:"tipo"`
	FirstName  string `yaml:"nombre"`
	LastName   string `yaml:"apellido"`
	Email      string `yaml:"correo"`
	Username   string `yaml:"nombre_usuario"`
	Password   string `yaml:"contrasena"`
	Claustro   string `yaml:"claustro"`
	AdminRole  string `yaml:"rol_admin"`
	Department string `yaml:"departamento"` // internal name, not id
}

// ClaimSpec declares one claim, filed as the named user.
type ClaimSpec struct {
	Creator string `yaml:"creador"` // username
	Detail  string `yaml:"detalle"`
}

// DefaultDepartments is the department set a fresh installation
// starts with.
func DefaultDepartments() []DepartmentSpec {
	return []DepartmentSpec{
		{Name: "secretario_tecnico", DisplayName: "Secretario Técnico", CentralAuthority: true},
		{Name: "secretario_informatico", DisplayName: "Secretario Informartico"},
		{Name: "maestranza", DisplayName: "Maestranza"},
	}
}

// Loader applies a seed file through the regular services.
type Loader struct {
	store     *store.Store
	directory *store.Directory
	users     *users.Service
	claims    *claims.Service
	workers   int
	clock     claims.Clock
	logger    *slog.Logger
}

// NewLoader creates a seed loader. workers bounds the concurrency of
// the claim-classification step; clock and logger may be nil.
func NewLoader(st *store.Store, dir *store.Directory, us *users.Service, cs *claims.Service, workers int, clock claims.Clock, logger *slog.Logger) *Loader {
	if workers <= 0 {
		workers = 4
	}
	if clock == nil {
		clock = claims.SystemClock()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		store:     st,
		directory: dir,
		users:     us,
		claims:    cs,
		workers:   workers,
		clock:     clock,
		logger:    logger,
	}
}

// Summary reports what a load created and what it skipped.
type Summary struct {
	Departments int
	Users       int
	Claims      int
	Errors      []error
}

// LoadFile parses and applies a YAML seed file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return l.Load(ctx, &f)
}

// Load applies a seed document. Departments come first so admins and
// claims can reference them by internal name. Already-existing
// departments and users are skipped, so loading is idempotent; claim
// creation is not, every load files its claims again.
func (l *Loader) Load(ctx context.Context, f *File) (*Summary, error) {
	sum := &Summary{}

	deps := f.Departments
	if len(deps) == 0 {
		deps = DefaultDepartments()
	}
	for _, spec := range deps {
		created, err := l.ensureDepartment(spec)
		if err != nil {
			return sum, err
		}
		if created {
			sum.Departments++
		}
	}
	l.directory.Invalidate()

	for _, spec := range f.Users {
		created, err := l.ensureUser(spec)
		if err != nil {
			sum.Errors = append(sum.Errors, fmt.Errorf("usuario %q: %w", spec.Username, err))
			continue
		}
		if created {
			sum.Users++
		}
	}

	if err := l.loadClaims(ctx, f.Claims, sum); err != nil {
		return sum, err
	}

	l.logger.Info("seed applied",
		"departments", sum.Departments, "users", sum.Users, "claims", sum.Claims, "errors", len(sum.Errors))
	return sum, nil
}

func (l *Loader) ensureDepartment(spec DepartmentSpec) (bool, error) {
	if spec.Name == "" {
		return false, fmt.Errorf("%w: el departamento necesita un nombre interno", model.ErrValidation)
	}
	if _, err := l.store.DepartmentByName(spec.Name); err == nil {
		return false, nil
	}
	display := spec.DisplayName
	if display == "" {
		display = spec.Name
	}
	err := l.store.CreateDepartment(&model.Department{
		ID:               uuid.NewString(),
		Name:             spec.Name,
		DisplayName:      display,
		CentralAuthority: spec.CentralAuthority,
		CreatedAt:        l.clock.Now(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Loader) ensureUser(spec UserSpec) (bool, error) {
	if _, err := l.store.UserByUsername(spec.Username); err == nil {
		return false, nil
	}

	req := users.RegisterRequest{
		FirstName: spec.FirstName,
		LastName:  spec.LastName,
		Email:     spec.Email,
		Username:  spec.Username,
		Password:  spec.Password,
		Claustro:  model.Claustro(spec.Claustro),
		AdminRole: model.AdminRole(spec.AdminRole),
	}
	if spec.Department != "" {
		dep, err := l.directory.ByName(spec.Department)
		if err != nil {
			return false, err
		}
		req.DepartmentID = dep.ID
	}

	var err error
	if spec.Kind == string(model.UserKindAdmin) {
		_, err = l.users.RegisterAdmin(req)
	} else {
		_, err = l.users.RegisterFinalUser(req)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// claimJob files one seeded claim through the engine; classification
// makes this the slow step, hence the pool.
type claimJob struct {
	loader    *Loader
	creatorID string
	detail    string
}

type claimResult struct {
	err error
}

func (r claimResult) GetError() error { return r.err }

func (j claimJob) Execute(ctx context.Context) worker.Result {
	_, err := j.loader.claims.CreateClaim(ctx, claims.CreateRequest{
		CreatorID: j.creatorID,
		Detail:    j.detail,
	})
	return claimResult{err: err}
}

func (l *Loader) loadClaims(ctx context.Context, specs []ClaimSpec, sum *Summary) error {
	if len(specs) == 0 {
		return nil
	}

	pool := worker.NewPool(l.workers)
	pool.Start()

	// Submit from a separate goroutine so Wait can drain results as
	// they arrive; a batch larger than the pool buffers would otherwise
	// block Submit with nobody collecting.
	var submitErr error
	go func() {
		defer pool.Done()
		for _, spec := range specs {
			if err := ctx.Err(); err != nil {
				submitErr = err
				pool.Shutdown()
				return
			}
			u, err := l.store.UserByUsername(spec.Creator)
			if err != nil {
				sum.Errors = append(sum.Errors, fmt.Errorf("reclamo de %q: %w", spec.Creator, err))
				continue
			}
			pool.Submit(claimJob{loader: l, creatorID: u.ID, detail: spec.Detail})
		}
	}()

	for _, res := range pool.Wait() {
		if err := res.GetError(); err != nil {
			sum.Errors = append(sum.Errors, err)
			continue
		}
		sum.Claims++
	}
	return submitErr
}
