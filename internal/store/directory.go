package store

import (
	"encoding/json"
	"time"

	"github.com/SolBenven/proyecto-final-prog-av/internal/cache"
	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

const (
	dirKeyAll     = "departamentos:todos"
	dirKeyCentral = "departamentos:secretaria_tecnica"
	dirKeyByID    = "departamentos:id:"
	dirKeyByName  = "departamentos:nombre:"
)

// Directory is the department lookup collaborator used by the
// classification router, the transfer workflow and reporting callers.
// Departments are near-static reference data, so reads go through a
// short-lived cache; any department write must Invalidate.
type Directory struct {
	store *Store
	cache cache.Cache
	ttl   time.Duration
}

// NewDirectory creates a department directory backed by the store.
func NewDirectory(s *Store) *Directory {
	return &Directory{
		store: s,
		cache: cache.NewMemoryCache(time.Minute, 10*time.Minute),
		ttl:   time.Minute,
	}
}

func (d *Directory) cached(key string, load func() (*model.Department, error)) (*model.Department, error) {
	if data, ok := d.cache.Get(key); ok {
		var dep model.Department
		if err := json.Unmarshal(data, &dep); err == nil {
			return &dep, nil
		}
	}
	dep, err := load()
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(dep); err == nil {
		_ = d.cache.Set(key, data, d.ttl)
	}
	return dep, nil
}

// ByID returns the department with the given id.
func (d *Directory) ByID(id string) (*model.Department, error) {
	return d.cached(dirKeyByID+id, func() (*model.Department, error) {
		return d.store.Department(id)
	})
}

// ByName returns the department with the given unique internal name.
func (d *Directory) ByName(name string) (*model.Department, error) {
	return d.cached(dirKeyByName+name, func() (*model.Department, error) {
		return d.store.DepartmentByName(name)
	})
}

// CentralAuthority returns the central-authority department, or a
// not-found error when no department carries the flag.
func (d *Directory) CentralAuthority() (*model.Department, error) {
	return d.cached(dirKeyCentral, func() (*model.Department, error) {
		return d.store.CentralAuthority()
	})
}

// All returns every department in canonical order.
func (d *Directory) All() ([]*model.Department, error) {
	if data, ok := d.cache.Get(dirKeyAll); ok {
		var deps []*model.Department
		if err := json.Unmarshal(data, &deps); err == nil {
			return deps, nil
		}
	}
	deps, err := d.store.Departments()
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(deps); err == nil {
		_ = d.cache.Set(dirKeyAll, data, d.ttl)
	}
	return deps, nil
}

// AvailableDestinations returns every department except the current
// one, in canonical order. These are the valid transfer targets.
func (d *Directory) AvailableDestinations(currentID string) ([]*model.Department, error) {
	deps, err := d.All()
	if err != nil {
		return nil, err
	}
	out := make([]*model.Department, 0, len(deps))
	for _, dep := range deps {
		if dep.ID != currentID {
			out = append(out, dep)
		}
	}
	return out, nil
}

// ForAdmin returns the departments visible to an admin: every one for
// the central secretary, their own for a department head.
func (d *Directory) ForAdmin(u *model.User) ([]*model.Department, error) {
	if u.IsCentralSecretary() {
		return d.All()
	}
	if u.DepartmentID == "" {
		return nil, nil
	}
	dep, err := d.ByID(u.DepartmentID)
	if err != nil {
		return nil, err
	}
	return []*model.Department{dep}, nil
}

// Invalidate drops all cached entries. Called after department writes.
func (d *Directory) Invalidate() {
	_ = d.cache.Clear()
}
