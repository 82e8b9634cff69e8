package domain

import "time"

// Role names are fixed; the grant set for each is built in internal/access.
const (
	RoleUser      = "user"
	RoleEditor    = "editor"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Password  string    `db:"password" json:"-"`
	IsAdmin   bool      `db:"is_admin" json:"isAdmin"`
	RoleID    int64     `db:"role_id" json:"roleId"`
	Role      *Role     `db:"-" json:"role,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// RoleName returns the role's name or empty when the role is not loaded.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}
