package domain

// Role is the authorization role the server assigns to a user.
type Role string

const (
	// RoleAdmin grants access to the admin panel.
	RoleAdmin Role = "ADMIN"
	// RoleUser is a regular storefront customer.
	RoleUser Role = "USER"
)

// User is the client's cached copy of the server-owned user record.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Photo string `json:"photo,omitempty"`
}

// IsAdmin returns true if the user may enter the admin panel.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Registration is the sign-up form. ConfirmPassword never leaves the client.
type Registration struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// AuthResult is what the server returns for a successful login or registration.
type AuthResult struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}
