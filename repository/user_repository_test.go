// repository/user_repository_test.go
package repository

import (
	"database/sql"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ryuga001/MiniOrangeAssessment1/logger"
	"github.com/ryuga001/MiniOrangeAssessment1/model"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var userCols = []string{"id", "username", "email", "password", "phone", "refresh_token", "provider_id", "created_at", "updated_at"}

func userRow(id int, username, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userCols).
		AddRow(id, username, email, "hashed-pw", nil, nil, nil, now, now)
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, email, password, phone, provider_id) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`)).
		WithArgs("alice", "a@x.com", sql.NullString{String: "hashed-pw", Valid: true}, sql.NullString{}, sql.NullString{}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	user := &model.User{
		Username: "alice",
		Email:    "a@x.com",
		Password: sql.NullString{String: "hashed-pw", Valid: true},
	}
	err = repo.CreateUser(user)

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password, phone, refresh_token, provider_id, created_at, updated_at FROM users WHERE email = $1`)).
			WithArgs("a@x.com").
			WillReturnRows(userRow(1, "alice", "a@x.com"))

		user, err := repo.GetUserByEmail("a@x.com")
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password, phone, refresh_token, provider_id, created_at, updated_at FROM users WHERE email = $1`)).
			WithArgs("missing@x.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByEmail("missing@x.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password, phone, refresh_token, provider_id, created_at, updated_at FROM users WHERE refresh_token = $1`)).
		WithArgs("some-refresh-token").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetUserByRefreshToken("some-refresh-token")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET refresh_token = $1, updated_at = now() WHERE id = $2`)).
		WithArgs("new-token", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SetRefreshToken(1, "new-token")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ClearRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	// Clearing a token nobody holds matches zero rows and is still fine.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET refresh_token = NULL, updated_at = now() WHERE refresh_token = $1`)).
		WithArgs("already-revoked").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.ClearRefreshToken("already-revoked")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	newName := "alice2"

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(&newName, (*string)(nil), 1).
		WillReturnRows(userRow(1, "alice2", "a@x.com"))

	user, err := repo.UpdateProfile(1, &newName, nil)
	assert.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
