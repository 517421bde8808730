package store

import (
	"fmt"
	"time"
)

// Key layout. Uniqueness constraints are the keys themselves: a
// subscription pair, a department name or a username can exist at most
// once because its key can. Audit records embed a zero-padded UnixNano
// so prefix scans return them in chronological order.
const (
	prefixClaim          = "reclamo/"
	prefixDepartment     = "departamento/"
	prefixDepartmentName = "departamento_nombre/"
	prefixUser           = "usuario/"
	prefixUserName       = "usuario_nombre/"
	prefixUserEmail      = "usuario_correo/"
	prefixHistory        = "historial/"
	prefixTransfer       = "derivacion/"
	prefixSubscription   = "adherente/"
	prefixSubsByUser     = "adherente_usuario/"
	prefixNotification   = "notificacion/"
	prefixNotifByUser    = "notificacion_usuario/"
)

func claimKey(id string) []byte       { return []byte(prefixClaim + id) }
func departmentKey(id string) []byte  { return []byte(prefixDepartment + id) }
func userKey(id string) []byte        { return []byte(prefixUser + id) }
func userNameKey(u string) []byte     { return []byte(prefixUserName + u) }
func userEmailKey(e string) []byte    { return []byte(prefixUserEmail + e) }
func notificationKey(id string) []byte { return []byte(prefixNotification + id) }

func departmentNameKey(name string) []byte {
	return []byte(prefixDepartmentName + name)
}

func historyKey(claimID string, at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d/%s", prefixHistory, claimID, at.UnixNano(), id))
}

func historyPrefix(claimID string) []byte {
	return []byte(prefixHistory + claimID + "/")
}

func transferKey(claimID string, at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d/%s", prefixTransfer, claimID, at.UnixNano(), id))
}

func transferPrefix(claimID string) []byte {
	return []byte(prefixTransfer + claimID + "/")
}

func subscriptionKey(claimID, userID string) []byte {
	return []byte(prefixSubscription + claimID + "/" + userID)
}

func subscriptionPrefix(claimID string) []byte {
	return []byte(prefixSubscription + claimID + "/")
}

func subsByUserKey(userID, claimID string) []byte {
	return []byte(prefixSubsByUser + userID + "/" + claimID)
}

func subsByUserPrefix(userID string) []byte {
	return []byte(prefixSubsByUser + userID + "/")
}

func notifByUserKey(userID string, at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d/%s", prefixNotifByUser, userID, at.UnixNano(), id))
}

func notifByUserPrefix(userID string) []byte {
	return []byte(prefixNotifByUser + userID + "/")
}
