package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupUserTestDB creates a new sqlx.DB instance and sqlmock for user repository testing.
func setupUserTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

// --- Tests for Converter Functions ---

func TestToUserDomain(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	m := &models.User{
		ID:                "user1",
		GoogleID:          "google123",
		Email:             "test@example.com",
		Name:              sql.NullString{String: "Test User", Valid: true},
		ProfilePictureURL: sql.NullString{String: "http://example.com/pic.jpg", Valid: true},
		TotalPoints:       450,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	user := toUserDomain(m)
	assert.Equal(t, m.ID, user.ID)
	assert.Equal(t, m.GoogleID, user.GoogleID)
	assert.Equal(t, m.Email, user.Email)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, 450, user.TotalPoints)
	assert.Nil(t, user.DeletedAt)

	m.Name.Valid = false
	m.ProfilePictureURL.Valid = false
	user = toUserDomain(m)
	assert.Equal(t, "", user.Name)
	assert.Equal(t, "", user.ProfilePictureURL)

	deletedTime := now.Add(-time.Hour)
	m.DeletedAt = sql.NullTime{Time: deletedTime, Valid: true}
	user = toUserDomain(m)
	assert.NotNil(t, user.DeletedAt)
	assert.True(t, deletedTime.Equal(*user.DeletedAt))
}

func TestToUserModel(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	user := &domain.User{
		ID:          "user1",
		GoogleID:    "google123",
		Email:       "test@example.com",
		Name:        "Test User",
		TotalPoints: 450,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m := toUserModel(user)
	assert.Equal(t, user.ID, m.ID)
	assert.Equal(t, "Test User", m.Name.String)
	assert.True(t, m.Name.Valid)
	assert.False(t, m.ProfilePictureURL.Valid) // empty string stays NULL
	assert.Equal(t, 450, m.TotalPoints)
	assert.False(t, m.DeletedAt.Valid)

	deletedTime := now.Add(-time.Hour)
	user.DeletedAt = &deletedTime
	m = toUserModel(user)
	assert.True(t, m.DeletedAt.Valid)
	assert.True(t, deletedTime.Equal(m.DeletedAt.Time))
}

// --- Tests for Repository Methods ---

func userRows(m models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"ID", "GOOGLE_ID", "EMAIL", "NAME", "PROFILE_PICTURE_URL", "TOTAL_POINTS", "CREATED_AT", "UPDATED_AT", "DELETED_AT"}).
		AddRow(m.ID, m.GoogleID, m.Email, m.Name, m.ProfilePictureURL, m.TotalPoints, m.CreatedAt, m.UpdatedAt, nil)
}

func TestSQLXUserRepository_GetUserByID_Success(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	now := time.Now()
	expected := models.User{
		ID:          "user-test-id",
		GoogleID:    "google-id",
		Email:       "test@example.com",
		Name:        sql.NullString{String: "Test User", Valid: true},
		TotalPoints: 620,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectQuery(`SELECT \* FROM users WHERE id = :1 AND deleted_at IS NULL`).
		WithArgs(expected.ID).
		WillReturnRows(userRows(expected))

	user, err := repo.GetUserByID(context.Background(), expected.ID)

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, expected.ID, user.ID)
	assert.Equal(t, expected.Email, user.Email)
	assert.Equal(t, 620, user.TotalPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_GetUserByID_NotFound(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM users WHERE id = :1 AND deleted_at IS NULL`).
		WithArgs("non-existent-id").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetUserByID(context.Background(), "non-existent-id")

	assert.NoError(t, err, "missing rows are not an error")
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_GetUserByGoogleID_NotFound(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM users WHERE google_id = :1 AND deleted_at IS NULL`).
		WithArgs("unknown-google-id").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetUserByGoogleID(context.Background(), "unknown-google-id")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestSQLXUserRepository_CreateUser_Success(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("new-user-id", "new-google-id", "new@example.com",
			sql.NullString{String: "New User", Valid: true}, sql.NullString{}, 0,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateUser(context.Background(), &domain.User{
		ID:       "new-user-id",
		GoogleID: "new-google-id",
		Email:    "new@example.com",
		Name:     "New User",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_CreateUser_AssignsID(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := domain.NewUser("first-login-google-id", "first@example.com")
	err := repo.CreateUser(context.Background(), user)

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID, "CreateUser should assign an id to a fresh user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_IncrementTotalPoints(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET\s+total_points = total_points \+ :1`).
		WithArgs(300, sqlmock.AnyArg(), "user1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementTotalPoints(context.Background(), "user1", 300)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_IncrementTotalPoints_UnknownUser(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET\s+total_points = total_points \+ :1`).
		WithArgs(300, sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementTotalPoints(context.Background(), "ghost", 300)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUserNotFound, domainErr.Code)
}

func TestSQLXUserRepository_SetTotalPoints(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET\s+total_points = :1,`).
		WithArgs(1000, sqlmock.AnyArg(), "user1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetTotalPoints(context.Background(), "user1", 1000)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_ListUserIDs(t *testing.T) {
	db, mock := setupUserTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM users WHERE deleted_at IS NULL ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow("user1").AddRow("user2"))

	ids, err := repo.ListUserIDs(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"user1", "user2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
