package domain

import "time"

// Role is the sole authorization signal consumed by the review workflows.
type Role string

const (
	RoleUser        Role = "user"
	RoleEditor      Role = "editor"
	RoleChiefEditor Role = "chiefeditor"
	RoleAdmin       Role = "admin"
	RoleModerator   Role = "moderator"
	RolePremium     Role = "premium"
	RoleInstructor  Role = "instructor"
	RoleRecruiter   Role = "recruiter"
)

// requestableRoles are the roles a user may petition for via a RoleRequest.
var requestableRoles = map[Role]struct{}{
	RoleRecruiter:   {},
	RoleInstructor:  {},
	RoleEditor:      {},
	RoleChiefEditor: {},
}

// IsRequestable reports whether the role can be requested through the
// escalation workflow. Admin and moderator are granted directly, never requested.
func (r Role) IsRequestable() bool {
	_, ok := requestableRoles[r]
	return ok
}

// CanReviewAnySubmission reports whether the role carries override authority:
// chief editors and admins review any submission regardless of assignment.
func (r Role) CanReviewAnySubmission() bool {
	return r == RoleChiefEditor || r == RoleAdmin
}

// UserStatus is the account lifecycle state (owned by account management).
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
	UserPending   UserStatus = "pending"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Actor is the normalized {userId, role} tuple built once at the transport
// boundary and trusted verbatim by the core.
type Actor struct {
	ID   string
	Role Role
}
