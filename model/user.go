package model

import (
	"database/sql"
	"time"
)

// User is one identity record. Email is the immutable lookup key.
// Password is null for accounts that only ever logged in through a
// provider, and RefreshToken holds the single currently-active refresh
// token for the identity (null when logged out).
type User struct {
	ID           int            `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	Password     sql.NullString `json:"-"`
	Phone        sql.NullString `json:"phone,omitempty"`
	RefreshToken sql.NullString `json:"-"`
	ProviderID   sql.NullString `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Profile is the outward projection of a User served by the user
// service.
type Profile struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Phone    string `json:"phone,omitempty"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Phone:    u.Phone.String,
	}
}
