package types

import "fmt"

// User roles.
const (
	RoleAdmin    = "Admin"
	RoleOperator = "Operator"
	RoleViewer   = "Viewer"
)

// User states.
const (
	UserActive   = "Active"
	UserInactive = "Inactive"
)

var (
	// Roles is the closed set of user role values.
	Roles = []string{RoleAdmin, RoleOperator, RoleViewer}
	// UserStatuses is the closed set of user status values.
	UserStatuses = []string{UserActive, UserInactive}
)

// User is an operator account. There is no authentication behind it.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	LastLogin string `json:"lastLogin"`
}

// NewUser returns a user with the add-form defaults.
func NewUser() *User {
	return &User{Role: RoleViewer, Status: UserActive, LastLogin: "Never"}
}

// TableName returns TableUsers.
func (u *User) TableName() string { return TableUsers }

// EntityID returns the display ID.
func (u *User) EntityID() string { return u.ID }

// SetEntityID sets the display ID. Backends call it when adding.
func (u *User) SetEntityID(id string) { u.ID = id }

// SearchText lists the fields free-text search matches against.
func (u *User) SearchText() []string { return []string{u.Name, u.Email} }

// EnumValue returns the named enum field for equality filters.
func (u *User) EnumValue(field string) (string, bool) {
	switch field {
	case "role":
		return u.Role, true
	case "status":
		return u.Status, true
	}
	return "", false
}

// Validate requires a name and an email and checks role and status.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrInvalidName
	}
	if u.Email == "" {
		return fmt.Errorf("user email: %w", ErrMissingField)
	}
	if err := checkEnum("role", u.Role, Roles); err != nil {
		return err
	}
	if !oneOf(u.Status, UserStatuses) {
		return fmt.Errorf("user status %q: %w", u.Status, ErrInvalidStatus)
	}
	return nil
}
