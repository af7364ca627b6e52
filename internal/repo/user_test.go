package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/springboard/internal/models"
)

var userRowColumns = []string{"id", "name", "email", "picture", "role", "created_at", "modified_at"}

func TestUserRepo_SaveOrUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO users \(name, email, picture, role, created_at, modified_at\) VALUES .* ON CONFLICT \(email\) DO UPDATE SET name = EXCLUDED.name, picture = EXCLUDED.picture`).
		WithArgs("alice", "alice@example.com", "https://img/a.png", "GUEST", now, now).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "alice", "alice@example.com", "https://img/a.png", "USER", now.Add(-time.Hour), now))

	repo := NewUserRepo(db)
	repo.now = fixedClock(now)
	user, err := repo.SaveOrUpdate(context.Background(), models.User{
		Name: "alice", Email: "alice@example.com", Picture: "https://img/a.png", Role: models.RoleGuest,
	})
	if err != nil {
		t.Fatalf("SaveOrUpdate: %v", err)
	}
	// The stored role wins over the default passed in.
	if user.ID != 1 || user.Role != models.RoleUser {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
