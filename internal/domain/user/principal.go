package user

// Role is the coarse authorization level attached to a verified session.
type Role string

const (
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Principal identifies the caller behind a verified access token. TeamID is
// empty for league staff accounts that do not run a franchise.
type Principal struct {
	UserID string
	TeamID string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
