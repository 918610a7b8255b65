package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ryuga001/MiniOrangeAssessment1/config"
	"github.com/ryuga001/MiniOrangeAssessment1/logger"
	"github.com/ryuga001/MiniOrangeAssessment1/model"
)

var (
	// ErrTokenExpired means the signature checked out but the token is
	// past its window.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid covers bad signatures and malformed tokens.
	ErrTokenInvalid = errors.New("token is invalid")
)

// TokenPair is one issuance: a short-lived access token and a
// long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService mints and verifies both token classes. The two classes
// are signed with independent secrets so the access-token verification
// key can be handed to other services without letting them forge
// refresh tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.JWT.AccessSecret),
		refreshSecret: []byte(cfg.JWT.RefreshSecret),
		accessTTL:     time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute,
		refreshTTL:    time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour,
	}
}

// NewAccessVerifier builds a TokenService that can only verify access
// tokens. The user service is wired with this so it never holds the
// refresh signing secret.
func NewAccessVerifier(accessSecret string) *TokenService {
	return &TokenService{accessSecret: []byte(accessSecret)}
}

// AccessTTL reports the configured access-token lifetime.
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL reports the configured refresh-token lifetime. The refresh
// cookie's Max-Age must match it.
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *TokenService) sign(userID int, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// IssueTokens mints a fresh pair for the identity.
func (s *TokenService) IssueTokens(userID int) (*TokenPair, error) {
	accessToken, err := s.sign(userID, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// IssueAccessToken mints a new access token only, for the refresh flow.
func (s *TokenService) IssueAccessToken(userID int) (string, error) {
	return s.sign(userID, s.accessSecret, s.accessTTL)
}

func verify(tokenString string, secret []byte) (int, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	return claims.UserID, nil
}

// VerifyAccess checks signature and expiry of an access token and
// returns the subject identity.
func (s *TokenService) VerifyAccess(tokenString string) (int, error) {
	return verify(tokenString, s.accessSecret)
}

// VerifyRefresh checks signature and expiry of a refresh token. The
// caller must additionally confirm the token is still stored; expiry
// here is one of the two permanence boundaries, revocation is the other.
func (s *TokenService) VerifyRefresh(tokenString string) (int, error) {
	return verify(tokenString, s.refreshSecret)
}
