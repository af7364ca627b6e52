package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crucial707/springboard/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB  *sql.DB
	now func() time.Time
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, now: time.Now}
}

const userColumns = `id, name, email, COALESCE(picture, ''), role, created_at, modified_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Picture, &role, &u.CreatedAt, &u.ModifiedAt)
	u.Role = models.Role(role)
	return u, err
}

// ==========================
// Save Or Update (by email)
// ==========================

// SaveOrUpdate inserts a user seen for the first time or refreshes name and
// picture of an existing one. The stored role is never overwritten here.
func (r *UserRepo) SaveOrUpdate(ctx context.Context, u models.User) (models.User, error) {
	u.MarkCreated(r.now().UTC())
	saved, err := scanUser(r.DB.QueryRowContext(ctx,
		`INSERT INTO users (name, email, picture, role, created_at, modified_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO UPDATE
		 SET name = EXCLUDED.name, picture = EXCLUDED.picture, modified_at = EXCLUDED.modified_at
		 RETURNING `+userColumns,
		u.Name, u.Email, nullString(u.Picture), string(u.Role), u.CreatedAt, u.ModifiedAt,
	))
	if err != nil {
		return models.User{}, fmt.Errorf("upsert user %s: %w", u.Email, err)
	}
	return saved, nil
}
