package claims

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

// Transfer reassigns a claim to another department and appends the
// transfer record in the same commit. Transferring a claim to the
// department that already owns it is rejected; the lifecycle status is
// never touched by a transfer.
func (s *Service) Transfer(claimID, destinationID, actorID, reason string) (*model.Transfer, error) {
	reason = strings.TrimSpace(reason)

	var rec *model.Transfer
	err := s.store.Update(func(tx *store.Tx) error {
		claim, err := tx.Claim(claimID)
		if err != nil {
			return err
		}
		if _, err := tx.Department(destinationID); err != nil {
			return wrapNotFound(err, "departamento de destino no encontrado")
		}
		if claim.DepartmentID == destinationID {
			return fmt.Errorf("%w: el reclamo ya pertenece a ese departamento", model.ErrValidation)
		}

		now := s.clock.Now()
		rec = &model.Transfer{
			ID:               uuid.NewString(),
			ClaimID:          claim.ID,
			FromDepartmentID: claim.DepartmentID,
			ToDepartmentID:   destinationID,
			ActorID:          actorID,
			Reason:           reason,
			TransferredAt:    now,
		}
		claim.DepartmentID = destinationID
		claim.UpdatedAt = now
		if err := tx.PutClaim(claim); err != nil {
			return err
		}
		return tx.AppendTransfer(rec)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("claim transferred",
		"claim", claimID, "from", rec.FromDepartmentID, "to", rec.ToDepartmentID)
	return rec, nil
}

// TransferHistory returns a claim's transfer records, newest first,
// after checking the claim exists.
func (s *Service) TransferHistory(claimID string) ([]*model.Transfer, error) {
	if _, err := s.store.Claim(claimID); err != nil {
		return nil, err
	}
	return s.store.Transfers(claimID)
}

// AvailableDestinations lists the departments a claim of the given
// department can be transferred to.
func (s *Service) AvailableDestinations(currentDepartmentID string) ([]*model.Department, error) {
	return s.directory.AvailableDestinations(currentDepartmentID)
}
