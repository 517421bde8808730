package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// AddSubscription inserts the (claim, user) pair. The pair key itself
// is the uniqueness constraint: an existing key rejects the insert, and
// two concurrent inserts of the same pair conflict at commit, which
// Update translates to the domain conflict error.
func (t *Tx) AddSubscription(sub *model.Subscription) error {
	taken, err := t.exists(subscriptionKey(sub.ClaimID, sub.UserID))
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: ya estás adherido a este reclamo", model.ErrConflict)
	}
	if err := t.set(subscriptionKey(sub.ClaimID, sub.UserID), sub); err != nil {
		return err
	}
	return t.set(subsByUserKey(sub.UserID, sub.ClaimID), sub.ClaimID)
}

// RemoveSubscription deletes the pair, failing when it does not exist.
func (t *Tx) RemoveSubscription(claimID, userID string) error {
	taken, err := t.exists(subscriptionKey(claimID, userID))
	if err != nil {
		return err
	}
	if !taken {
		return fmt.Errorf("%w: no estás adherido a este reclamo", model.ErrNotFound)
	}
	if err := t.delete(subscriptionKey(claimID, userID)); err != nil {
		return err
	}
	return t.delete(subsByUserKey(userID, claimID))
}

// HasSubscription reports whether the pair exists.
func (t *Tx) HasSubscription(claimID, userID string) (bool, error) {
	return t.exists(subscriptionKey(claimID, userID))
}

// Subscriptions lists a claim's subscriptions ordered by creation time.
func (t *Tx) Subscriptions(claimID string) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := t.scanPrefix(subscriptionPrefix(claimID), func(val []byte) error {
		var sub model.Subscription
		if err := json.Unmarshal(val, &sub); err != nil {
			return err
		}
		subs = append(subs, &sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].CreatedAt.Before(subs[j].CreatedAt)
	})
	return subs, nil
}

// SubscriberIDs returns the subscriber user ids of a claim in
// subscription order.
func (t *Tx) SubscriberIDs(claimID string) ([]string, error) {
	subs, err := t.Subscriptions(claimID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.UserID)
	}
	return ids, nil
}

// SubscribedClaimIDs returns the ids of claims the user subscribes to.
func (t *Tx) SubscribedClaimIDs(userID string) ([]string, error) {
	var ids []string
	err := t.scanPrefix(subsByUserPrefix(userID), func(val []byte) error {
		var id string
		if err := json.Unmarshal(val, &id); err != nil {
			// Index values are plain JSON strings; anything else is
			// a corrupted entry.
			return fmt.Errorf("store: bad subscription index value: %s", strings.TrimSpace(string(val)))
		}
		ids = append(ids, id)
		return nil
	})
	return ids, err
}

// Store-level convenience wrappers.

// HasSubscription reports whether the (claim, user) pair exists.
func (s *Store) HasSubscription(claimID, userID string) (bool, error) {
	var ok bool
	err := s.View(func(tx *Tx) error {
		var err error
		ok, err = tx.HasSubscription(claimID, userID)
		return err
	})
	return ok, err
}

// Subscriptions lists a claim's subscriptions in subscription order.
func (s *Store) Subscriptions(claimID string) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := s.View(func(tx *Tx) error {
		var err error
		subs, err = tx.Subscriptions(claimID)
		return err
	})
	return subs, err
}

// SubscribedClaims lists the claims a user subscribes to, newest first.
func (s *Store) SubscribedClaims(userID string) ([]*model.Claim, error) {
	var claims []*model.Claim
	err := s.View(func(tx *Tx) error {
		ids, err := tx.SubscribedClaimIDs(userID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			c, err := tx.Claim(id)
			if err != nil {
				return err
			}
			claims = append(claims, c)
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
