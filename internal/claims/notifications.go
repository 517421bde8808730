package claims

import (
	"fmt"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

// MarkRead marks one notification as read on behalf of its recipient.
// Only the recipient may mark it; marking an already-read notification
// is a harmless no-op that keeps the original read timestamp.
func (s *Service) MarkRead(notificationID, userID string) error {
	return s.store.Update(func(tx *store.Tx) error {
		n, err := tx.Notification(notificationID)
		if err != nil {
			return err
		}
		if n.UserID != userID {
			return fmt.Errorf("%w: no tienes permiso para marcar esta notificación", model.ErrPermissionDenied)
		}
		if !n.MarkRead(s.clock.Now()) {
			return nil
		}
		return tx.PutNotification(n)
	})
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many were marked. No unread notifications is not an
// error.
func (s *Service) MarkAllRead(userID string) (int, error) {
	var marked int
	err := s.store.Update(func(tx *store.Tx) error {
		unread, err := tx.UnreadForUser(userID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		for _, n := range unread {
			if n.MarkRead(now) {
				if err := tx.PutNotification(n); err != nil {
					return err
				}
				marked++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

// UnreadNotifications lists a user's unread notifications, newest
// first.
func (s *Service) UnreadNotifications(userID string) ([]*model.Notification, error) {
	return s.store.UnreadNotifications(userID)
}

// UnreadCount returns the user's unread notification count for badge
// display.
func (s *Service) UnreadCount(userID string) (int, error) {
	return s.store.UnreadCount(userID)
}
