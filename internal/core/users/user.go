package users

import (
	"time"
)

// User is an identity record. The password hash never leaves this package's
// projections: it is excluded from JSON and from every view type below.
type User struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ID           string    `json:"id" db:"id"`
	Handle       string    `json:"username" db:"handle"`
	DisplayName  string    `json:"name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
}

// PublicUser is the user representation returned by signup and login.
type PublicUser struct {
	CreatedAt   time.Time `json:"createdAt"`
	ID          string    `json:"id"`
	Handle      string    `json:"username"`
	DisplayName string    `json:"name"`
}

// AuthorView is the public summary embedded in posts and comments.
type AuthorView struct {
	ID          string `json:"id"`
	Handle      string `json:"username"`
	DisplayName string `json:"name"`
}

// ToPublic projects a user for its owner.
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// ToAuthorView projects a user for other readers.
func (u *User) ToAuthorView() *AuthorView {
	return &AuthorView{
		ID:          u.ID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
	}
}

// RegisterRequest is the signup input.
type RegisterRequest struct {
	Handle      string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"name"`
}

// LoginRequest is the login input.
type LoginRequest struct {
	Handle   string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	User  *PublicUser `json:"user"`
	Token string      `json:"token"`
}
