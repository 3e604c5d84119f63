package domain

import "time"

// User is the admin account profile returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}

// Account is the server-side record behind a User; the password hash never
// leaves the repository layer.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	Name         string
	CreatedAt    time.Time
}

// Profile converts an Account into its client-visible shape.
func (a Account) Profile() User {
	return User{ID: a.ID, Email: a.Email, Role: a.Role, Name: a.Name}
}
