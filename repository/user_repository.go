package repository

import (
	"database/sql"

	"github.com/ryuga001/MiniOrangeAssessment1/logger"
	"github.com/ryuga001/MiniOrangeAssessment1/model"
	"github.com/sirupsen/logrus"
)

// IUserRepository defines the contract for identity and refresh-token
// persistence. The stored refresh token is the session store: a session
// exists exactly while a row holds the token.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	GetUserByRefreshToken(token string) (*model.User, error)
	SetRefreshToken(userID int, token string) error
	ClearRefreshToken(token string) error
	UpdateProfile(userID int, username, phone *string) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, username, email, password, phone, refresh_token, provider_id, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Phone, &user.RefreshToken, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateUser(user *model.User) error {
	log := logger.Log.WithFields(logrus.Fields{
		"username": user.Username,
		"email":    user.Email,
	})
	log.Info("Executing query to create a new user")

	query := `INSERT INTO users (username, email, password, phone, provider_id) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, user.Username, user.Email, user.Password, user.Phone, user.ProviderID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(query, email))
}

func (r *UserRepository) GetUserByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(query, id))
}

// GetUserByRefreshToken resolves the identity currently holding the
// exact token. sql.ErrNoRows covers both never-issued and
// revoked/rotated tokens.
func (r *UserRepository) GetUserByRefreshToken(token string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE refresh_token = $1`
	return scanUser(r.DB.QueryRow(query, token))
}

// SetRefreshToken overwrites the stored refresh token for the identity.
// A single UPDATE keeps rotation atomic: concurrent logins serialize on
// the row and exactly one token remains active.
func (r *UserRepository) SetRefreshToken(userID int, token string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to store refresh token")

	query := `UPDATE users SET refresh_token = $1, updated_at = now() WHERE id = $2`
	if _, err := r.DB.Exec(query, token, userID); err != nil {
		log.WithError(err).Error("Failed to execute store refresh token query")
		return err
	}
	return nil
}

// ClearRefreshToken revokes the session holding the token. Matching zero
// rows is fine; logout is idempotent.
func (r *UserRepository) ClearRefreshToken(token string) error {
	query := `UPDATE users SET refresh_token = NULL, updated_at = now() WHERE refresh_token = $1`
	if _, err := r.DB.Exec(query, token); err != nil {
		logger.Log.WithError(err).Error("Failed to execute clear refresh token query")
		return err
	}
	return nil
}

// UpdateProfile patches the mutable profile fields and returns the
// updated record. Nil fields are left as they are.
func (r *UserRepository) UpdateProfile(userID int, username, phone *string) (*model.User, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update user profile")

	query := `UPDATE users
		SET username = COALESCE($1, username),
		    phone = COALESCE($2, phone),
		    updated_at = now()
		WHERE id = $3
		RETURNING ` + userColumns
	user, err := scanUser(r.DB.QueryRow(query, username, phone, userID))
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update profile query")
		}
		return nil, err
	}
	return user, nil
}
