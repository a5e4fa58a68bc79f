package model

// Role is the permission scope granted to a user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSecretaire Role = "secretaire"
	RoleLecteur    Role = "lecteur"

	// DefaultRole applies to users without a role assignment.
	DefaultRole = RoleLecteur
)

// AllRoles returns the roles in the order the role selector lists them.
func AllRoles() []Role {
	return []Role{RoleLecteur, RoleSecretaire, RoleAdmin}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSecretaire, RoleLecteur:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
