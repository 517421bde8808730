package store

import (
	"encoding/json"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// AppendStatusChange writes one immutable audit entry. Keys embed the
// change timestamp, so forward scans return chronological order.
func (t *Tx) AppendStatusChange(rec *model.StatusChange) error {
	return t.set(historyKey(rec.ClaimID, rec.ChangedAt, rec.ID), rec)
}

// StatusChanges returns a claim's audit trail in chronological order.
func (t *Tx) StatusChanges(claimID string) ([]*model.StatusChange, error) {
	var recs []*model.StatusChange
	err := t.scanPrefix(historyPrefix(claimID), func(val []byte) error {
		var rec model.StatusChange
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		recs = append(recs, &rec)
		return nil
	})
	return recs, err
}

// StatusChanges returns a claim's audit trail in chronological order.
func (s *Store) StatusChanges(claimID string) ([]*model.StatusChange, error) {
	var recs []*model.StatusChange
	err := s.View(func(tx *Tx) error {
		var err error
		recs, err = tx.StatusChanges(claimID)
		return err
	})
	return recs, err
}
