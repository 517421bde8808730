package claims

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

// Transition moves a claim to a new status, appends the audit record
// and fans out one notification to the creator and to every adherent
// subscribed at this moment. The three writes commit together or not
// at all.
//
// Any status may move to any other status, including reopening a
// resolved or invalid claim. Only the identity transition is rejected.
func (s *Service) Transition(claimID string, to model.Status, actorID string) (*model.StatusChange, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: estado no válido: %q", model.ErrValidation, to)
	}

	var rec *model.StatusChange
	var notified int
	err := s.store.Update(func(tx *store.Tx) error {
		claim, err := tx.Claim(claimID)
		if err != nil {
			return err
		}
		if claim.Status == to {
			return fmt.Errorf("%w: el estado no ha cambiado", model.ErrValidation)
		}

		now := s.clock.Now()
		rec = &model.StatusChange{
			ID:        uuid.NewString(),
			ClaimID:   claim.ID,
			From:      claim.Status,
			To:        to,
			ActorID:   actorID,
			ChangedAt: now,
		}
		claim.Status = to
		claim.UpdatedAt = now
		if err := tx.PutClaim(claim); err != nil {
			return err
		}
		if err := tx.AppendStatusChange(rec); err != nil {
			return err
		}

		recipients, err := s.recipients(tx, claim)
		if err != nil {
			return err
		}
		notified, err = s.fanout(tx, rec, recipients)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("claim status changed",
		"claim", claimID, "from", rec.From, "to", rec.To, "notified", notified)
	return rec, nil
}

// recipients resolves who gets notified about a claim's transition:
// the creator plus the adherents subscribed right now. A user appears
// at most once even if data ever put the creator in the subscriber
// set.
func (s *Service) recipients(tx *store.Tx, claim *model.Claim) ([]string, error) {
	subscribers, err := tx.SubscriberIDs(claim.ID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(subscribers)+1)
	out = append(out, claim.CreatorID)
	for _, id := range subscribers {
		if id != claim.CreatorID {
			out = append(out, id)
		}
	}
	return out, nil
}

// fanout creates one unread notification per recipient, all sharing the
// transition timestamp. Notifications are never deduplicated against
// earlier unread ones.
func (s *Service) fanout(tx *store.Tx, rec *model.StatusChange, recipients []string) (int, error) {
	for _, userID := range recipients {
		n := &model.Notification{
			ID:             uuid.NewString(),
			UserID:         userID,
			StatusChangeID: rec.ID,
			CreatedAt:      rec.ChangedAt,
		}
		if err := tx.AddNotification(n); err != nil {
			return 0, err
		}
	}
	return len(recipients), nil
}
