package model

import "time"

// Notification is one per-recipient unread marker for a status change.
// Every transition produces a fresh notification per recipient; they are
// never deduplicated and never deleted, only marked read.
type Notification struct {
	ID             string     `json:"id"`
	UserID         string     `json:"usuario_id"`
	StatusChangeID string     `json:"historial_estado_reclamo_id"`
	ReadAt         *time.Time `json:"leido_en,omitempty"`
	CreatedAt      time.Time  `json:"creado_en"`
}

// Read reports whether the notification has been read.
func (n *Notification) Read() bool {
	return n.ReadAt != nil
}

// MarkRead sets the read timestamp once. Marking an already-read
// notification is a no-op; the return value reports whether this call
// changed anything.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.ReadAt != nil {
		return false
	}
	t := now
	n.ReadAt = &t
	return true
}
