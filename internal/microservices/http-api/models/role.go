package models

import "fmt"

// Role is the closed set of account roles. Compare roles through its methods only.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// Roles lists every valid role, lowest privilege first.
func Roles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin}
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the privileges of other.
// Unknown roles never satisfy anything.
func (r Role) AtLeast(other Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	return have >= roleRank[other]
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsModerator() bool {
	return r == RoleModerator
}

func (r Role) String() string {
	return string(r)
}
