package claims

import (
	"fmt"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

// AdminClaims lists the claims visible to an admin, newest first. The
// central secretary sees every department; a department head only
// their own. A non-empty departmentID narrows the listing and must be
// within the admin's visibility.
func (s *Service) AdminClaims(admin *model.User, departmentID string) ([]*model.Claim, error) {
	visible, err := s.visibleDepartmentIDs(admin)
	if err != nil {
		return nil, err
	}
	if departmentID != "" {
		if !admin.IsCentralSecretary() {
			found := false
			for _, id := range visible {
				if id == departmentID {
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("%w: no puedes ver los reclamos de ese departamento", model.ErrPermissionDenied)
			}
		}
		visible = []string{departmentID}
	}
	return s.store.Claims(store.ClaimFilter{DepartmentIDs: visible})
}

// AdminClaim loads one claim after checking the admin may manage it.
func (s *Service) AdminClaim(admin *model.User, claimID string) (*model.Claim, error) {
	claim, err := s.store.Claim(claimID)
	if err != nil {
		return nil, err
	}
	if !admin.CanManageClaim(claim) {
		return nil, fmt.Errorf("%w: no puedes gestionar este reclamo", model.ErrPermissionDenied)
	}
	return claim, nil
}

// AdminTransition changes a claim's status on behalf of an admin,
// enforcing the department ownership rules before delegating to
// Transition.
func (s *Service) AdminTransition(admin *model.User, claimID string, to model.Status) (*model.StatusChange, error) {
	if _, err := s.AdminClaim(admin, claimID); err != nil {
		return nil, err
	}
	return s.Transition(claimID, to, admin.ID)
}

// AdminTransfer re-routes a claim on behalf of an admin. Only the
// central secretary may transfer.
func (s *Service) AdminTransfer(admin *model.User, claimID, destinationID, reason string) (*model.Transfer, error) {
	if !admin.CanTransfer() {
		return nil, fmt.Errorf("%w: solo la secretaría técnica puede derivar reclamos", model.ErrPermissionDenied)
	}
	return s.Transfer(claimID, destinationID, admin.ID, reason)
}

// StatusCounts returns claim counts per status across the admin's
// visible departments, with zero entries for absent statuses.
func (s *Service) StatusCounts(admin *model.User) (map[model.Status]int, error) {
	visible, err := s.visibleDepartmentIDs(admin)
	if err != nil {
		return nil, err
	}
	return s.store.StatusCounts(visible)
}

// visibleDepartmentIDs resolves the department scope of an admin. A
// nil slice means unrestricted (central secretary).
func (s *Service) visibleDepartmentIDs(admin *model.User) ([]string, error) {
	if admin.IsCentralSecretary() {
		return nil, nil
	}
	deps, err := s.directory.ForAdmin(admin)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(deps))
	for _, d := range deps {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
