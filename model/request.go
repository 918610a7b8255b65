// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the raw Google ID token; every identity
// field is derived from the provider's introspection response, never
// from the client.
type GoogleLoginRequest struct {
	GoogleToken string `json:"googleToken" validate:"required"`
}

// FacebookLoginRequest carries the raw Facebook access token.
type FacebookLoginRequest struct {
	FacebookToken string `json:"facebookToken" validate:"required"`
}

// UpdateProfileRequest defines the mutable profile fields. Both are
// optional; absent fields are left untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}
