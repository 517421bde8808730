package model

import "time"

// Department is an organizational unit that owns and resolves claims.
// At most one department carries the CentralAuthority flag; that
// department receives claims the classifier cannot route and its admins
// have organization-wide visibility and transfer rights.
type Department struct {
	ID               string    `json:"id"`
	Name             string    `json:"nombre"`
	DisplayName      string    `json:"nombre_mostrar"`
	CentralAuthority bool      `json:"es_secretaria_tecnica"`
	CreatedAt        time.Time `json:"creado_en"`
}
