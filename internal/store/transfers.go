package store

import (
	"encoding/json"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// AppendTransfer writes one immutable re-routing record.
func (t *Tx) AppendTransfer(rec *model.Transfer) error {
	return t.set(transferKey(rec.ClaimID, rec.TransferredAt, rec.ID), rec)
}

// Transfers returns a claim's re-routing history, newest first.
func (t *Tx) Transfers(claimID string) ([]*model.Transfer, error) {
	var recs []*model.Transfer
	err := t.scanPrefixReverse(transferPrefix(claimID), func(val []byte) error {
		var rec model.Transfer
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		recs = append(recs, &rec)
		return nil
	})
	return recs, err
}

// Transfers returns a claim's re-routing history, newest first.
func (s *Store) Transfers(claimID string) ([]*model.Transfer, error) {
	var recs []*model.Transfer
	err := s.View(func(tx *Tx) error {
		var err error
		recs, err = tx.Transfers(claimID)
		return err
	})
	return recs, err
}
