package domain

// Role is the authorization role of a caller.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents an account owner. Credentials are managed outside this service.
type User struct {
	UserID     string `json:"userID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	ProfilePic string `json:"profilePic"`
	Role       Role   `json:"role"`
	AuditFields
}

// Caller is the authenticated identity supplied by the request layer.
type Caller struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// NewCustomer holds the profile used to create a user together with its account.
type NewCustomer struct {
	Name       string
	Email      string
	Mobile     string
	Address    string
	ProfilePic string
}

// ProfileUpdate holds optional profile changes; nil fields are left untouched.
type ProfileUpdate struct {
	Name       *string
	Mobile     *string
	Address    *string
	ProfilePic *string
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Mobile == nil && p.Address == nil && p.ProfilePic == nil
}
