package claims

import (
	"fmt"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

// Subscribe adheres a user to someone else's claim so they receive its
// future status notifications. Creators cannot subscribe to their own
// claims and duplicate subscriptions are rejected.
func (s *Service) Subscribe(claimID, userID string) error {
	err := s.store.Update(func(tx *store.Tx) error {
		claim, err := tx.Claim(claimID)
		if err != nil {
			return err
		}
		if claim.CreatorID == userID {
			return fmt.Errorf("%w: no puedes adherirte a tu propio reclamo", model.ErrValidation)
		}
		return tx.AddSubscription(&model.Subscription{
			ClaimID:   claimID,
			UserID:    userID,
			CreatedAt: s.clock.Now(),
		})
	})
	if err != nil {
		return err
	}
	s.logger.Info("user subscribed to claim", "claim", claimID, "user", userID)
	return nil
}

// Unsubscribe removes a user's adherence to a claim. Already-created
// notifications are kept.
func (s *Service) Unsubscribe(claimID, userID string) error {
	err := s.store.Update(func(tx *store.Tx) error {
		if _, err := tx.Claim(claimID); err != nil {
			return err
		}
		return tx.RemoveSubscription(claimID, userID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("user unsubscribed from claim", "claim", claimID, "user", userID)
	return nil
}

// IsSubscribed reports whether the user currently adheres to the claim.
func (s *Service) IsSubscribed(claimID, userID string) (bool, error) {
	return s.store.HasSubscription(claimID, userID)
}

// Subscribers lists a claim's adherents in subscription order.
func (s *Service) Subscribers(claimID string) ([]*model.Subscription, error) {
	return s.store.Subscriptions(claimID)
}
