package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// Tx is one storage transaction. Entity accessors hang off it so a
// multi-entity operation (transition + history + fan-out) shares a
// single commit scope.
type Tx struct {
	txn *badger.Txn
}

func (t *Tx) get(key []byte, v any) error {
	item, err := t.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: get %q: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func (t *Tx) set(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", key, err)
	}
	return t.txn.Set(key, data)
}

func (t *Tx) exists(key []byte) (bool, error) {
	_, err := t.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: get %q: %w", key, err)
	}
	return true, nil
}

func (t *Tx) delete(key []byte) error {
	return t.txn.Delete(key)
}

// scanPrefix visits every value under the prefix in key order.
func (t *Tx) scanPrefix(prefix []byte, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := t.txn.NewIterator(opts)
	defer it.Close()
	for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(func(val []byte) error {
			return fn(val)
		}); err != nil {
			return err
		}
	}
	return nil
}

// scanPrefixReverse visits every value under the prefix in reverse key
// order (newest first for time-ordered keys).
func (t *Tx) scanPrefixReverse(prefix []byte, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.Reverse = true
	it := t.txn.NewIterator(opts)
	defer it.Close()
	// Reverse iteration seeks to the last key under the prefix.
	seek := append(append([]byte{}, prefix...), 0xff)
	for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(func(val []byte) error {
			return fn(val)
		}); err != nil {
			return err
		}
	}
	return nil
}
