package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the claim set carried by both token classes. The two
// classes are told apart by their signing secret, not their shape.
type AppClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}
