package model

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// UserKind discriminates the two user variants sharing one entity.
type UserKind string

const (
	UserKindFinal UserKind = "usuario_final"
	UserKindAdmin UserKind = "usuario_admin"
)

// Claustro is the constituency of an end user.
type Claustro string

const (
	ClaustroEstudiante Claustro = "estudiante"
	ClaustroDocente    Claustro = "docente"
	ClaustroPAyS       Claustro = "PAyS"
)

// AdminRole is the role of an administrative user.
type AdminRole string

const (
	RoleDepartmentHead   AdminRole = "jefe_departamento"
	RoleCentralSecretary AdminRole = "secretario_tecnico"
)

// User is a single tagged entity covering both end users and admins.
// Kind selects which of the role-specific fields apply: Claustro for
// end users, AdminRole and DepartmentID for admins.
type User struct {
	ID           string   `json:"id"`
	FirstName    string   `json:"nombre"`
	LastName     string   `json:"apellido"`
	Email        string   `json:"correo"`
	Username     string   `json:"nombre_usuario"`
	PasswordHash string   `json:"hash_contrasena"`
	Kind         UserKind `json:"tipo_usuario"`

	Claustro Claustro `json:"claustro,omitempty"`

	AdminRole    AdminRole `json:"rol_admin,omitempty"`
	DepartmentID string    `json:"departamento_id,omitempty"`
}

// FullName returns the display name with role or constituency suffix.
func (u *User) FullName() string {
	switch u.Kind {
	case UserKindAdmin:
		role := string(u.AdminRole)
		if role == "" {
			role = "sin rol"
		}
		return fmt.Sprintf("%s %s - %s", u.FirstName, u.LastName, role)
	default:
		claustro := string(u.Claustro)
		if claustro == "" {
			claustro = "sin claustro"
		}
		return fmt.Sprintf("%s %s - %s", u.FirstName, u.LastName, claustro)
	}
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user is an administrative user.
func (u *User) IsAdmin() bool {
	return u.Kind == UserKindAdmin
}

// IsCentralSecretary reports whether the user holds the central
// authority role.
func (u *User) IsCentralSecretary() bool {
	return u.Kind == UserKindAdmin && u.AdminRole == RoleCentralSecretary
}

// IsDepartmentHead reports whether the user heads a department.
func (u *User) IsDepartmentHead() bool {
	return u.Kind == UserKindAdmin && u.AdminRole == RoleDepartmentHead
}

// CanManageClaim reports whether this admin may act on the claim. The
// central secretary manages every claim; a department head only those
// of their own department.
func (u *User) CanManageClaim(c *Claim) bool {
	if u.IsCentralSecretary() {
		return true
	}
	return u.IsDepartmentHead() && u.DepartmentID == c.DepartmentID
}

// CanTransfer reports whether the user may re-route claims between
// departments.
func (u *User) CanTransfer() bool {
	return u.IsCentralSecretary()
}
