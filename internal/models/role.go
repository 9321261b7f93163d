package models

import "strings"

// Role is an actor's standing on a single list. The zero value RoleNone
// means no role row exists.
type Role string

const (
	RoleNone   Role = ""
	RoleViewer Role = "Viewer"
	RoleEditor Role = "Editor"
	RoleOwner  Role = "Owner"
)

var roleRank = map[Role]int{
	RoleNone:   0,
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

func (r Role) Valid() bool {
	return r == RoleViewer || r == RoleEditor || r == RoleOwner
}

// ParseRole accepts role names case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(s) {
	case "viewer":
		return RoleViewer, true
	case "editor":
		return RoleEditor, true
	case "owner":
		return RoleOwner, true
	}
	return RoleNone, false
}

// RoleAssignment is one user's role on one list.
type RoleAssignment struct {
	TodoListID int64
	UserName   string
	Role       Role
}
