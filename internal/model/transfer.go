package model

import "time"

// Transfer records a claim being re-routed between departments. Like
// status history it is append-only and independent of the lifecycle
// audit trail; the claim's current department always matches the
// ToDepartmentID of its latest transfer (or its original routing).
type Transfer struct {
	ID               string    `json:"id"`
	ClaimID          string    `json:"reclamo_id"`
	FromDepartmentID string    `json:"departamento_origen_id"`
	ToDepartmentID   string    `json:"departamento_destino_id"`
	ActorID          string    `json:"derivado_por_id"`
	Reason           string    `json:"motivo,omitempty"`
	TransferredAt    time.Time `json:"derivado_en"`
}
