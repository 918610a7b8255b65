// file: service/auth_service_test.go

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ryuga001/MiniOrangeAssessment1/model"
	"github.com/stretchr/testify/assert"
)

// fakeUserRepo is an in-memory session store so lifecycle tests can
// observe rotation and revocation instead of scripting them.
type fakeUserRepo struct {
	users   map[int]*model.User
	nextID  int
	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.creates++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) GetUserByID(id int) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) GetUserByRefreshToken(token string) (*model.User, error) {
	for _, u := range f.users {
		if u.RefreshToken.Valid && u.RefreshToken.String == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) SetRefreshToken(userID int, token string) error {
	if u, ok := f.users[userID]; ok {
		u.RefreshToken = sql.NullString{String: token, Valid: true}
	}
	return nil
}

func (f *fakeUserRepo) ClearRefreshToken(token string) error {
	for _, u := range f.users {
		if u.RefreshToken.Valid && u.RefreshToken.String == token {
			u.RefreshToken = sql.NullString{}
		}
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfile(userID int, username, phone *string) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if username != nil {
		u.Username = *username
	}
	if phone != nil {
		u.Phone = sql.NullString{String: *phone, Valid: true}
	}
	copied := *u
	return &copied, nil
}

// stubVerifier resolves every token to a fixed identity.
type stubVerifier struct {
	identity *ExternalIdentity
	err      error
}

func (s *stubVerifier) Verify(ctx context.Context, providerToken string) (*ExternalIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func newTestAuthService(repo *fakeUserRepo, google, facebook IIdentityVerifier) *AuthService {
	return NewAuthService(repo, NewTokenService(testTokenConfig()), google, facebook)
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	// HashPassword and CheckPasswordHash use no dependencies, so nil
	// collaborators are fine for this specific test.
	authService := NewAuthService(nil, nil, nil, nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	match := authService.CheckPasswordHash(password, hashedPassword)
	if !match {
		t.Errorf("authService.CheckPasswordHash() should have returned true for a matching password, but got false.")
	}

	wrongPassword := "notMyPassword"
	match = authService.CheckPasswordHash(wrongPassword, hashedPassword)
	if match {
		t.Errorf("authService.CheckPasswordHash() should have returned false for a non-matching password, but got true.")
	}
}

func TestAuthService_RegisterConflict(t *testing.T) {
	repo := newFakeUserRepo()
	authService := newTestAuthService(repo, nil, nil)

	_, _, err := authService.Register("alice", "a@x.com", "password123")
	assert.NoError(t, err)

	_, _, err = authService.Register("alice2", "a@x.com", "password456")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, 1, repo.creates)
}

// Unknown email and wrong password must be indistinguishable to the
// caller.
func TestAuthService_LoginErrorsAreUniform(t *testing.T) {
	repo := newFakeUserRepo()
	authService := newTestAuthService(repo, nil, nil)

	_, _, err := authService.Register("alice", "a@x.com", "password123")
	assert.NoError(t, err)

	_, _, errUnknown := authService.Login("nobody@x.com", "password123")
	_, _, errWrongPw := authService.Login("a@x.com", "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestAuthService_LoginRotatesRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	authService := newTestAuthService(repo, nil, nil)

	_, first, err := authService.Register("alice", "a@x.com", "password123")
	assert.NoError(t, err)

	_, second, err := authService.Login("a@x.com", "password123")
	assert.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The rotated-away token no longer refreshes.
	_, err = authService.Refresh(first.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The current one does.
	accessToken, err := authService.Refresh(second.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
}

func TestAuthService_RefreshAfterLogout(t *testing.T) {
	repo := newFakeUserRepo()
	authService := newTestAuthService(repo, nil, nil)

	_, pair, err := authService.Register("alice", "a@x.com", "password123")
	assert.NoError(t, err)

	assert.NoError(t, authService.Logout(pair.RefreshToken))

	_, err = authService.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAuthService_LogoutIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	authService := newTestAuthService(repo, nil, nil)

	_, pair, err := authService.Register("alice", "a@x.com", "password123")
	assert.NoError(t, err)

	assert.NoError(t, authService.Logout(pair.RefreshToken))
	assert.NoError(t, authService.Logout(pair.RefreshToken))
}

func TestAuthService_RefreshRejectsExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	cfg := testTokenConfig()
	cfg.JWT.RefreshTTLHours = -1
	authService := NewAuthService(repo, NewTokenService(cfg), nil, nil)

	_, pair, err := authService.Register("alice", "a@x.com", "password123")
	assert.NoError(t, err)

	// Still stored, but past its signed expiry. Both checks must pass.
	_, err = authService.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthService_ProviderLoginProvisionsOnce(t *testing.T) {
	repo := newFakeUserRepo()
	google := &stubVerifier{identity: &ExternalIdentity{
		Email:       "g@x.com",
		DisplayName: "G User",
		SubjectID:   "google-sub-1",
	}}
	authService := newTestAuthService(repo, google, nil)

	userA, _, err := authService.LoginWithGoogle(context.Background(), "token-1")
	assert.NoError(t, err)

	userB, _, err := authService.LoginWithGoogle(context.Background(), "token-2")
	assert.NoError(t, err)

	assert.Equal(t, userA.ID, userB.ID)
	assert.Equal(t, 1, repo.creates)
}

// A provisioned social account has an unguessable password hash, so the
// credential path can never log it in.
func TestAuthService_SocialAccountHasNoUsablePassword(t *testing.T) {
	repo := newFakeUserRepo()
	google := &stubVerifier{identity: &ExternalIdentity{
		Email:       "g@x.com",
		DisplayName: "G User",
		SubjectID:   "google-sub-1",
	}}
	authService := newTestAuthService(repo, google, nil)

	_, _, err := authService.LoginWithGoogle(context.Background(), "token-1")
	assert.NoError(t, err)

	_, _, err = authService.Login("g@x.com", "google-sub-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ProviderErrorsPassThrough(t *testing.T) {
	repo := newFakeUserRepo()
	google := &stubVerifier{err: ErrInvalidProviderToken}
	facebook := &stubVerifier{err: ErrProviderUnreachable}
	authService := newTestAuthService(repo, google, facebook)

	_, _, err := authService.LoginWithGoogle(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidProviderToken)

	_, _, err = authService.LoginWithFacebook(context.Background(), "any")
	assert.ErrorIs(t, err, ErrProviderUnreachable)
	assert.Equal(t, 0, repo.creates)
}
