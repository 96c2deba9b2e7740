package types

// Role describes what an authenticated actor may do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleOperator
}

// Actor is a resolved caller identity. Identity issuance is owned by an
// external collaborator; the core only consumes the resolved form.
type Actor struct {
	UserID int64
	Role   Role
}

// IsOperator reports whether the actor holds the operator role.
func (a Actor) IsOperator() bool {
	return a.Role == RoleOperator
}
