package model

import "time"

// Subscription marks a user as adherent to a claim. The (ClaimID, UserID)
// pair is unique at the storage layer and the claim's creator may never
// hold one for their own claim.
type Subscription struct {
	ClaimID   string    `json:"reclamo_id"`
	UserID    string    `json:"usuario_id"`
	CreatedAt time.Time `json:"creado_en"`
}
