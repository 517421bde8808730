package model

import "errors"

// Sentinel errors for the engine. Operations wrap these with a
// human-readable reason, so callers branch with errors.Is while users
// still get the specific message.
var (
	// ErrValidation covers bad input: empty detail, unknown state,
	// no-op transitions and transfers.
	ErrValidation = errors.New("validación fallida")

	// ErrNotFound is returned when a claim, department, user or
	// notification does not exist.
	ErrNotFound = errors.New("no encontrado")

	// ErrConflict covers uniqueness violations, including duplicate
	// subscriptions and concurrent conflicting writes.
	ErrConflict = errors.New("conflicto")

	// ErrPermissionDenied is returned when the acting user may not
	// perform the operation.
	ErrPermissionDenied = errors.New("permiso denegado")

	// ErrRoutingUnavailable is returned when a claim cannot be routed:
	// the classifier produced nothing usable and no central-authority
	// department exists to fall back to.
	ErrRoutingUnavailable = errors.New("ruteo no disponible")
)
