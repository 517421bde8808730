package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// ClaimFilter restricts claim listings. Zero values mean "no filter";
// an empty non-nil DepartmentIDs slice matches nothing, mirroring an
// admin with no visible departments.
type ClaimFilter struct {
	DepartmentIDs []string
	Status        *model.Status
	CreatorID     string
}

func (f ClaimFilter) matches(c *model.Claim) bool {
	if f.DepartmentIDs != nil {
		found := false
		for _, id := range f.DepartmentIDs {
			if c.DepartmentID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.CreatorID != "" && c.CreatorID != f.CreatorID {
		return false
	}
	return true
}

// Claim loads one claim by id.
func (t *Tx) Claim(id string) (*model.Claim, error) {
	var c model.Claim
	if err := t.get(claimKey(id), &c); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: reclamo no encontrado", model.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

// PutClaim writes a claim, inserting or overwriting.
func (t *Tx) PutClaim(c *model.Claim) error {
	return t.set(claimKey(c.ID), c)
}

// Claims lists claims matching the filter, newest first.
func (t *Tx) Claims(filter ClaimFilter) ([]*model.Claim, error) {
	var claims []*model.Claim
	err := t.scanPrefix([]byte(prefixClaim), func(val []byte) error {
		var c model.Claim
		if err := json.Unmarshal(val, &c); err != nil {
			return err
		}
		if filter.matches(&c) {
			claims = append(claims, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(claims, func(i, j int) bool {
		return claims[i].CreatedAt.After(claims[j].CreatedAt)
	})
	return claims, nil
}

// PendingClaims lists Pendiente claims, optionally restricted to one
// department, newest first. This is the similarity corpus.
func (t *Tx) PendingClaims(departmentID string) ([]*model.Claim, error) {
	filter := ClaimFilter{Status: statusPtr(model.StatusPending)}
	if departmentID != "" {
		filter.DepartmentIDs = []string{departmentID}
	}
	return t.Claims(filter)
}

func statusPtr(s model.Status) *model.Status { return &s }

// StatusCounts aggregates claims per lifecycle state with an explicit
// zero for every state, so consumers never branch on missing keys.
// A nil departmentIDs means all departments; an empty slice counts
// nothing.
func (t *Tx) StatusCounts(departmentIDs []string) (map[model.Status]int, error) {
	counts := make(map[model.Status]int, len(model.AllStatuses()))
	for _, s := range model.AllStatuses() {
		counts[s] = 0
	}
	if departmentIDs != nil && len(departmentIDs) == 0 {
		return counts, nil
	}
	claims, err := t.Claims(ClaimFilter{DepartmentIDs: departmentIDs})
	if err != nil {
		return nil, err
	}
	for _, c := range claims {
		counts[c.Status]++
	}
	return counts, nil
}

// Store-level convenience wrappers.

// Claim loads one claim by id.
func (s *Store) Claim(id string) (*model.Claim, error) {
	var c *model.Claim
	err := s.View(func(tx *Tx) error {
		var err error
		c, err = tx.Claim(id)
		return err
	})
	return c, err
}

// Claims lists claims matching the filter, newest first.
func (s *Store) Claims(filter ClaimFilter) ([]*model.Claim, error) {
	var claims []*model.Claim
	err := s.View(func(tx *Tx) error {
		var err error
		claims, err = tx.Claims(filter)
		return err
	})
	return claims, err
}

// PendingClaims lists open claims, optionally for one department.
func (s *Store) PendingClaims(departmentID string) ([]*model.Claim, error) {
	var claims []*model.Claim
	err := s.View(func(tx *Tx) error {
		var err error
		claims, err = tx.PendingClaims(departmentID)
		return err
	})
	return claims, err
}

// StatusCounts aggregates claims per state with zero-fill.
func (s *Store) StatusCounts(departmentIDs []string) (map[model.Status]int, error) {
	var counts map[model.Status]int
	err := s.View(func(tx *Tx) error {
		var err error
		counts, err = tx.StatusCounts(departmentIDs)
		return err
	})
	return counts, err
}
