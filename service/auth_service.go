package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"

	"github.com/ryuga001/MiniOrangeAssessment1/logger"
	"github.com/ryuga001/MiniOrangeAssessment1/model"
	"github.com/ryuga001/MiniOrangeAssessment1/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike, so the login response never reveals which one it
	// was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailExists means the email is already registered.
	ErrEmailExists = errors.New("user already exists")
	// ErrSessionNotFound means no identity currently holds the presented
	// refresh token: never issued, rotated away, or revoked.
	ErrSessionNotFound = errors.New("no active session for token")
)

// AuthService orchestrates the session lifecycle: credential and
// provider verification, token issuance, rotation and revocation.
type AuthService struct {
	userRepo repository.IUserRepository
	tokens   *TokenService
	google   IIdentityVerifier
	facebook IIdentityVerifier
}

func NewAuthService(userRepo repository.IUserRepository, tokens *TokenService, google, facebook IIdentityVerifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		google:   google,
		facebook: facebook,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new identity and opens its first session.
func (s *AuthService) Register(username, email, password string) (*model.User, *TokenPair, error) {
	_, err := s.userRepo.GetUserByEmail(email)
	if err == nil {
		return nil, nil, ErrEmailExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: sql.NullString{String: hashedPassword, Valid: true},
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, nil, err
	}

	pair, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies the credential pair and rotates the session. Any prior
// refresh token for the identity stops working.
func (s *AuthService) Login(email, password string) (*model.User, *TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.Password.Valid || !s.CheckPasswordHash(password, user.Password.String) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// LoginWithGoogle resolves identity through Google's token
// introspection.
func (s *AuthService) LoginWithGoogle(ctx context.Context, providerToken string) (*model.User, *TokenPair, error) {
	return s.loginWithProvider(ctx, s.google, providerToken)
}

// LoginWithFacebook resolves identity through the Facebook Graph API.
func (s *AuthService) LoginWithFacebook(ctx context.Context, providerToken string) (*model.User, *TokenPair, error) {
	return s.loginWithProvider(ctx, s.facebook, providerToken)
}

func (s *AuthService) loginWithProvider(ctx context.Context, verifier IIdentityVerifier, providerToken string) (*model.User, *TokenPair, error) {
	identity, err := verifier.Verify(ctx, providerToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByEmail(identity.Email)
	if errors.Is(err, sql.ErrNoRows) {
		user, err = s.provisionExternalUser(identity)
	}
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// provisionExternalUser creates an identity for a first-time social
// login. The password is a bcrypt hash of random bytes, so the
// credential path can never authenticate this account.
func (s *AuthService) provisionExternalUser(identity *ExternalIdentity) (*model.User, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	unusableHash, err := s.HashPassword(hex.EncodeToString(secret))
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   identity.DisplayName,
		Email:      identity.Email,
		Password:   sql.NullString{String: unusableHash, Valid: true},
		ProviderID: sql.NullString{String: identity.SubjectID, Valid: true},
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Log.WithField("email", identity.Email).Info("Provisioned new user from external identity")
	return user, nil
}

// openSession issues a fresh token pair and stores the refresh token,
// replacing whatever token the identity held before.
func (s *AuthService) openSession(user *model.User) (*TokenPair, error) {
	pair, err := s.tokens.IssueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetRefreshToken(user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// Refresh exchanges a still-stored, still-valid refresh token for a new
// access token. The refresh token itself is left in place.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	if _, err := s.tokens.VerifyRefresh(refreshToken); err != nil {
		return "", err
	}

	return s.tokens.IssueAccessToken(user.ID)
}

// Logout revokes the session holding the token. Revoking an
// already-revoked token succeeds.
func (s *AuthService) Logout(refreshToken string) error {
	return s.userRepo.ClearRefreshToken(refreshToken)
}
