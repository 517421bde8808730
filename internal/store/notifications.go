package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// AddNotification writes a notification and its per-user time-ordered
// index entry.
func (t *Tx) AddNotification(n *model.Notification) error {
	if err := t.set(notificationKey(n.ID), n); err != nil {
		return err
	}
	return t.set(notifByUserKey(n.UserID, n.CreatedAt, n.ID), n.ID)
}

// Notification loads one notification by id.
func (t *Tx) Notification(id string) (*model.Notification, error) {
	var n model.Notification
	if err := t.get(notificationKey(id), &n); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: notificación no encontrada", model.ErrNotFound)
		}
		return nil, err
	}
	return &n, nil
}

// PutNotification updates a notification in place. Only the read
// timestamp ever changes.
func (t *Tx) PutNotification(n *model.Notification) error {
	return t.set(notificationKey(n.ID), n)
}

// NotificationsForUser returns a user's notifications, newest first.
func (t *Tx) NotificationsForUser(userID string) ([]*model.Notification, error) {
	var notifs []*model.Notification
	err := t.scanPrefixReverse(notifByUserPrefix(userID), func(val []byte) error {
		var id string
		if err := json.Unmarshal(val, &id); err != nil {
			return err
		}
		n, err := t.Notification(id)
		if err != nil {
			return err
		}
		notifs = append(notifs, n)
		return nil
	})
	return notifs, err
}

// UnreadForUser returns a user's unread notifications, newest first.
func (t *Tx) UnreadForUser(userID string) ([]*model.Notification, error) {
	all, err := t.NotificationsForUser(userID)
	if err != nil {
		return nil, err
	}
	unread := all[:0]
	for _, n := range all {
		if !n.Read() {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

// Store-level convenience wrappers.

// Notification loads one notification by id.
func (s *Store) Notification(id string) (*model.Notification, error) {
	var n *model.Notification
	err := s.View(func(tx *Tx) error {
		var err error
		n, err = tx.Notification(id)
		return err
	})
	return n, err
}

// UnreadNotifications returns a user's unread set, newest first.
func (s *Store) UnreadNotifications(userID string) ([]*model.Notification, error) {
	var notifs []*model.Notification
	err := s.View(func(tx *Tx) error {
		var err error
		notifs, err = tx.UnreadForUser(userID)
		return err
	})
	return notifs, err
}

// UnreadCount returns how many unread notifications the user has.
func (s *Store) UnreadCount(userID string) (int, error) {
	notifs, err := s.UnreadNotifications(userID)
	if err != nil {
		return 0, err
	}
	return len(notifs), nil
}
