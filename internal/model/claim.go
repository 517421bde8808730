package model

import "time"

// Status is the lifecycle state of a claim. The state graph is fully
// connected: any state can be reached from any other, except that a
// transition to the current state is rejected. Pendiente is the only
// initial state.
type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusInProcess Status = "En proceso"
	StatusResolved  Status = "Resuelto"
	StatusInvalid   Status = "Inválido"
)

// AllStatuses returns every lifecycle state in canonical order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusInProcess, StatusResolved, StatusInvalid}
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProcess, StatusResolved, StatusInvalid:
		return true
	}
	return false
}

// Claim is a complaint ticket filed by an end user. Its state only changes
// through the lifecycle service and its department only through the
// transfer workflow; claims are never deleted in normal operation.
type Claim struct {
	ID           string    `json:"id"`
	Detail       string    `json:"detalle"`
	Status       Status    `json:"estado"`
	ImagePath    string    `json:"ruta_imagen,omitempty"`
	DepartmentID string    `json:"departamento_id"`
	CreatorID    string    `json:"creador_id"`
	CreatedAt    time.Time `json:"creado_en"`
	UpdatedAt    time.Time `json:"actualizado_en"`
}
