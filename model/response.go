package model

// APIResponse is the success envelope shared by both services.
type APIResponse struct {
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// TokenData is the payload returned by every operation that issues an
// access token. The refresh token travels only in the http-only cookie.
type TokenData struct {
	AccessToken string `json:"accessToken"`
}
