package domain

import "time"

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusArchived UserStatus = "archived"
	UserStatusInvited  UserStatus = "invited"
)

// Well-known role tags. Any other value is looked up in the roles store.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is the domain model for every account in an organization, staff and
// admins alike. The Role field is a tag resolved against the roles store;
// it is not a foreign key.
type User struct {
	ID             string
	FullName       string
	Email          string
	PasswordHash   string
	Role           string
	OrganizationID string
	Status         UserStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin reports whether the user carries the privileged admin tag.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
