package model

import "time"

// StatusChange is one immutable entry in a claim's audit trail. Entries
// are append-only; the claim's current state always equals the To field
// of its most recent entry, or StatusPending if it has none.
type StatusChange struct {
	ID        string    `json:"id"`
	ClaimID   string    `json:"reclamo_id"`
	From      Status    `json:"estado_anterior"`
	To        Status    `json:"estado_nuevo"`
	ActorID   string    `json:"cambiado_por_id"`
	ChangedAt time.Time `json:"cambiado_en"`
}
