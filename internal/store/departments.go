package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// Department loads one department by id.
func (t *Tx) Department(id string) (*model.Department, error) {
	var d model.Department
	if err := t.get(departmentKey(id), &d); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: departamento no encontrado", model.ErrNotFound)
		}
		return nil, err
	}
	return &d, nil
}

// DepartmentByName resolves a department through its unique internal
// name.
func (t *Tx) DepartmentByName(name string) (*model.Department, error) {
	var id string
	if err := t.get(departmentNameKey(name), &id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: departamento no encontrado", model.ErrNotFound)
		}
		return nil, err
	}
	return t.Department(id)
}

// InsertDepartment writes a new department and its name index. The
// unique name is enforced here: an existing index entry rejects the
// insert.
func (t *Tx) InsertDepartment(d *model.Department) error {
	taken, err := t.exists(departmentNameKey(d.Name))
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: ya existe un departamento con el nombre %q", model.ErrConflict, d.Name)
	}
	if err := t.set(departmentNameKey(d.Name), d.ID); err != nil {
		return err
	}
	return t.set(departmentKey(d.ID), d)
}

// Departments lists every department ordered by display name, the
// system's canonical department ordering.
func (t *Tx) Departments() ([]*model.Department, error) {
	var deps []*model.Department
	err := t.scanPrefix([]byte(prefixDepartment), func(val []byte) error {
		var d model.Department
		if err := json.Unmarshal(val, &d); err != nil {
			return err
		}
		deps = append(deps, &d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(deps, func(i, j int) bool {
		return deps[i].DisplayName < deps[j].DisplayName
	})
	return deps, nil
}

// CentralAuthority returns the department flagged as central authority,
// or a not-found error when none exists. Absence is a fatal routing
// condition for unclassifiable claims.
func (t *Tx) CentralAuthority() (*model.Department, error) {
	deps, err := t.Departments()
	if err != nil {
		return nil, err
	}
	for _, d := range deps {
		if d.CentralAuthority {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: no se encontró la secretaría técnica", model.ErrNotFound)
}

// Store-level convenience wrappers.

// CreateDepartment inserts a department enforcing name uniqueness.
func (s *Store) CreateDepartment(d *model.Department) error {
	return s.Update(func(tx *Tx) error {
		return tx.InsertDepartment(d)
	})
}

// Department loads one department by id.
func (s *Store) Department(id string) (*model.Department, error) {
	var d *model.Department
	err := s.View(func(tx *Tx) error {
		var err error
		d, err = tx.Department(id)
		return err
	})
	return d, err
}

// DepartmentByName resolves a department by unique internal name.
func (s *Store) DepartmentByName(name string) (*model.Department, error) {
	var d *model.Department
	err := s.View(func(tx *Tx) error {
		var err error
		d, err = tx.DepartmentByName(name)
		return err
	})
	return d, err
}

// Departments lists all departments in canonical order.
func (s *Store) Departments() ([]*model.Department, error) {
	var deps []*model.Department
	err := s.View(func(tx *Tx) error {
		var err error
		deps, err = tx.Departments()
		return err
	})
	return deps, err
}

// CentralAuthority returns the central-authority department.
func (s *Store) CentralAuthority() (*model.Department, error) {
	var d *model.Department
	err := s.View(func(tx *Tx) error {
		var err error
		d, err = tx.CentralAuthority()
		return err
	})
	return d, err
}
