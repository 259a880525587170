package domain

// UserRole is the authorization tier supplied by the identity provider.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleViewer     UserRole = "VIEWER"
)

// Actor is the authenticated principal attached to each request.
type Actor struct {
	UserID string
	Role   UserRole
}

// CanWrite reports whether the role may create, edit or delete ledger entities.
func (r UserRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleAccountant
}

// CanApprove reports whether the role belongs to the elevated tier allowed to
// approve transactions.
func (r UserRole) CanApprove() bool {
	return r == RoleAdmin || r == RoleAccountant
}

// Valid reports whether the role is one of the known tiers.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleViewer:
		return true
	}
	return false
}
